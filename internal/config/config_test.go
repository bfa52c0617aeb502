package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageSQLite)
	}
	if cfg.SQLitePath != "shelf.db" {
		t.Errorf("SQLitePath = %q, want shelf.db", cfg.SQLitePath)
	}
	if cfg.FlushInterval != 30*time.Second {
		t.Errorf("FlushInterval = %v, want 30s", cfg.FlushInterval)
	}
	if cfg.Strict {
		t.Error("Strict should default to false")
	}
	if cfg.RateBurst != 30 || cfg.RatePerMin != 120 {
		t.Errorf("rate = %d/%d, want 30/120", cfg.RateBurst, cfg.RatePerMin)
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SHELF_STORAGE", " Redis ")
	t.Setenv("SHELF_STRICT", "true")
	t.Setenv("SHELF_FLUSH_INTERVAL", "2m")
	t.Setenv("SHELF_AMBIENT_THEME", "DARK")
	t.Setenv("SHELF_ALLOWED_CIDRS", `"10.0.0.0/8", 127.0.0.1 ,,`)
	t.Setenv("SHELF_KEY_PREFIX", "alice:")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage != StorageRedis {
		t.Errorf("Storage = %q, want redis", cfg.Storage)
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.FlushInterval != 2*time.Minute {
		t.Errorf("FlushInterval = %v, want 2m", cfg.FlushInterval)
	}
	if cfg.AmbientTheme != "dark" {
		t.Errorf("AmbientTheme = %q, want dark", cfg.AmbientTheme)
	}
	if want := []string{"10.0.0.0/8", "127.0.0.1"}; !reflect.DeepEqual(cfg.AllowedCIDRS, want) {
		t.Errorf("AllowedCIDRS = %v, want %v", cfg.AllowedCIDRS, want)
	}
	if cfg.KeyPrefix != "alice:" {
		t.Errorf("KeyPrefix = %q, want alice:", cfg.KeyPrefix)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown storage", key: "SHELF_STORAGE", value: "postgres", wantErr: "SHELF_STORAGE"},
		{name: "bad duration", key: "SHELF_FLUSH_INTERVAL", value: "soon", wantErr: "parse"},
		{name: "zero flush interval", key: "SHELF_FLUSH_INTERVAL", value: "0s", wantErr: "SHELF_FLUSH_INTERVAL"},
		{name: "bad theme", key: "SHELF_AMBIENT_THEME", value: "sepia", wantErr: "SHELF_AMBIENT_THEME"},
		{name: "bad log level", key: "SHELF_LOG_LEVEL", value: "trace", wantErr: "SHELF_LOG_LEVEL"},
		{name: "bad bool", key: "SHELF_STRICT", value: "maybe", wantErr: "parse"},
		{name: "zero burst", key: "SHELF_RATE_BURST", value: "0", wantErr: "SHELF_RATE_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail for %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisPassword(t *testing.T) {
	t.Setenv("SHELF_STORAGE", "redis")
	t.Setenv("SHELF_REDIS_PASSWORD_REQUIRED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should require a redis password")
	}

	t.Setenv("SHELF_REDIS_PASSWORD", "secret")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SHELF_SQLITE_PATH=/data/library.db\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	// godotenv sets the variable for the rest of the process.
	t.Cleanup(func() { _ = os.Unsetenv("SHELF_SQLITE_PATH") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SQLitePath != "/data/library.db" {
		t.Errorf("SQLitePath = %q, want /data/library.db", cfg.SQLitePath)
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisUser: "admin", RedisPassword: "hunter2"}

	r := cfg.Redacted()
	if r.RedisPassword == "hunter2" || r.RedisUser == "admin" {
		t.Errorf("Redacted() leaked credentials: %+v", r)
	}
	if cfg.RedisPassword != "hunter2" {
		t.Error("Redacted() modified the original")
	}
}

func TestCleanList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "only blanks", in: []string{" ", ""}, want: nil},
		{name: "quotes and spaces", in: []string{` "a.example.com"`, "'b' ", "c"}, want: []string{"a.example.com", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("cleanList(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
