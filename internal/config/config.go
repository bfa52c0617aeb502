package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends accepted by SHELF_STORAGE.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	ListenPort      string        `env:"SHELF_LISTEN_PORT" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHELF_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"SHELF_LOG_LEVEL" envDefault:"info"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `env:"SHELF_PRETTY_LOG" envDefault:"true"` // true => zap dev (color), false => zap prod (JSON)

	// Library
	Storage       string        `env:"SHELF_STORAGE" envDefault:"sqlite"`       // sqlite | redis | memory
	SQLitePath    string        `env:"SHELF_SQLITE_PATH" envDefault:"shelf.db"` // database file for the sqlite backend
	KeyPrefix     string        `env:"SHELF_KEY_PREFIX"`                        // namespace when several libraries share a backend
	SeedFile      string        `env:"SHELF_SEED_FILE"`                         // optional YAML replacing the built-in seed
	Strict        bool          `env:"SHELF_STRICT" envDefault:"false"`         // reject out-of-range input instead of accepting it
	AmbientTheme  string        `env:"SHELF_AMBIENT_THEME"`                     // light | dark, used until a theme is saved
	FlushInterval time.Duration `env:"SHELF_FLUSH_INTERVAL" envDefault:"30s"`   // retry cadence for failed saves

	// Redis
	RedisAddr             string        `env:"SHELF_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisUser             string        `env:"SHELF_REDIS_USERNAME"`
	RedisPassword         string        `env:"SHELF_REDIS_PASSWORD"`
	RedisPasswordRequired bool          `env:"SHELF_REDIS_PASSWORD_REQUIRED" envDefault:"false"`
	RedisDB               int           `env:"SHELF_REDIS_DB" envDefault:"0"`
	RedisDT               time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	RedisRT               time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	RedisWT               time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	RedisMaxWait          time.Duration `env:"REDIS_MAX_WAIT" envDefault:"10s"`
	RedisPingTimeout      time.Duration `env:"REDIS_PING_TIMEOUT" envDefault:"5s"`
	RedisPoolSize         int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisConnectTimeout   time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	RedisRetryInterval    time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	RedisWarnThreshold    int           `env:"REDIS_WARN_THRESHOLD" envDefault:"3"`

	// Access restrictions
	AllowedHosts []string `env:"SHELF_ALLOWED_HOSTS" envSeparator:","` // optional, restrict access to specific Host headers
	AllowedCIDRS []string `env:"SHELF_ALLOWED_CIDRS" envSeparator:","` // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     `env:"SHELF_TRUST_PROXY" envDefault:"false"` // true => trust X-Forwarded-For headers
	RateBurst    int      `env:"SHELF_RATE_BURST" envDefault:"30"`     // per-IP burst on mutating routes
	RatePerMin   int      `env:"SHELF_RATE_PER_MIN" envDefault:"120"`  // per-IP refill
}

// Load reads .env (when present) and the environment, then validates.
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.AmbientTheme = strings.ToLower(strings.TrimSpace(cfg.AmbientTheme))
	cfg.AllowedHosts = cleanList(cfg.AllowedHosts)
	cfg.AllowedCIDRS = cleanList(cfg.AllowedCIDRS)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg, nil
}

// Validate checks the rules env tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("config: SHELF_STORAGE must be sqlite, redis or memory, got %q", c.Storage)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: SHELF_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}

	switch c.AmbientTheme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("config: SHELF_AMBIENT_THEME must be light or dark, got %q", c.AmbientTheme)
	}

	if c.Storage == StorageSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		return fmt.Errorf("config: SHELF_SQLITE_PATH is required with the sqlite backend")
	}

	if c.Storage == StorageRedis && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("config: SHELF_REDIS_PASSWORD is required when SHELF_REDIS_PASSWORD_REQUIRED=true")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHELF_SHUTDOWN_TIMEOUT must be > 0, got %v", c.ShutdownTimeout)
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("config: SHELF_FLUSH_INTERVAL must be > 0, got %v", c.FlushInterval)
	}
	if c.RateBurst < 1 || c.RatePerMin < 1 {
		return fmt.Errorf("config: SHELF_RATE_BURST and SHELF_RATE_PER_MIN must be >= 1")
	}

	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// cleanList trims entries, strips surrounding quotes and drops empties.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	parts := make([]string, 0, len(in))
	for _, part := range in {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return parts
}
