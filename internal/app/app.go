package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/httpserver"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/library"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/persistence"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	kv      persistence.KV
	library *library.Store
	flusher *scheduler.Flusher
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open storage early - fail fast if unavailable
	kv, err := OpenStorage(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	adapter, err := NewAdapter(cfg, kv, loggerClient)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	lib := library.Open(context.Background(), adapter,
		library.WithStrict(cfg.Strict),
		library.WithLogger(logger.With(loggerClient, logger.String("component", "library"))),
	)

	// Create manual flush trigger channel
	flushTrigger := make(chan struct{}, 1)

	flusher := scheduler.NewFlusher(
		lib,
		loggerClient,
		cfg.FlushInterval,
		flushTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateBurst:    cfg.RateBurst,
		RatePerMin:   cfg.RatePerMin,
		Library:      lib,
		Adapter:      adapter,
		Storage:      cfg.Storage,
		FlushTrigger: flushTrigger,
	}

	server := httpserver.New(cfg.ListenPort, d)

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		server:  server,
		kv:      kv,
		library: lib,
		flusher: flusher,
	}, nil
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("📚 Starting shelf on %s", a.cfg.ListenPort)
	a.logger.Infof("shelf %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.flusher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start flusher: %w", err)
	}
	a.logger.Info("flusher started",
		logger.Duration("interval", a.cfg.FlushInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.flusher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	// Last chance for changes that never reached storage.
	if !a.flusher.Run(shutdownCtx) {
		a.logger.Error("exiting with unsaved library changes")
	}

	if err := a.kv.Close(); err != nil {
		a.logger.Warnf("failed to close storage: %v", err)
	} else {
		a.logger.Info("✅ Storage closed cleanly")
	}

	if runErr == nil {
		a.logger.Info("✅ shelf stopped cleanly")
	}
	return runErr
}
