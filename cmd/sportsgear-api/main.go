package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/upb/sportsgear-api/app"
	"github.com/upb/sportsgear-api/config"
	"github.com/upb/sportsgear-api/internal/observability"
	"github.com/upb/sportsgear-api/routes"
	"go.uber.org/zap"
)

func main() {
	bootstrap, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}
	_ = bootstrap.Sync()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

// initLogger builds the bootstrap logger from LOG_LEVEL and LOG_FORMAT.
// It only reports configuration failures; .env has not been loaded yet.
func initLogger() (*zap.Logger, error) {
	return observability.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// loadConfig loads the configuration, .env included, and builds the process
// logger from its observability settings.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// run serves the API until ctx is cancelled, then drains in-flight requests
// and releases the store and revocation list connections.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      routes.SetupRoutes(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("sportsgear api listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("store_driver", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}

	if err := deps.Close(shutdownCtx); err != nil {
		logger.Error("failed to close dependencies", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}

	logger.Info("server stopped")
	return runErr
}
