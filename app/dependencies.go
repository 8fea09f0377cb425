package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/upb/sportsgear-api/auth"
	"github.com/upb/sportsgear-api/config"
	"github.com/upb/sportsgear-api/middleware"
	"github.com/upb/sportsgear-api/repositories"
	"github.com/upb/sportsgear-api/repositories/memory"
	"github.com/upb/sportsgear-api/repositories/mongo"
	"github.com/upb/sportsgear-api/repositories/postgres"
	"github.com/upb/sportsgear-api/services"
	"go.uber.org/zap"
)

// storeBackend is the lifecycle surface shared by the repository factories
type storeBackend interface {
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Resource store
	Repos *repositories.Repositories
	store storeBackend

	// Revocation list, nil when REDIS_URL is unset
	redis   *redis.Client
	revoker *auth.RedisRevoker

	// Auth
	Tokens         *auth.TokenService
	AuthHandler    *auth.Handler
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	Products *services.ProductService
	Cart     *services.CartService
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStore(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize resource store: %w", err)
	}

	if err := deps.initAuth(ctx, cfg); err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.Products = services.NewProductService(deps.Repos.Products, logger)
	deps.Cart = services.NewCartService(deps.Repos.CartItems, logger)

	logger.Info("all dependencies initialized successfully",
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("revocation", deps.revoker != nil))
	return deps, nil
}

// initStore opens the configured resource store and creates its repositories
func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		factory, err := mongo.NewRepositoryFactory(ctx, cfg, d.Logger)
		if err != nil {
			return err
		}
		d.store = factory
		d.Repos = factory.NewRepositories()

	case config.StoreDriverPostgres:
		factory, err := postgres.NewRepositoryFactory(ctx, cfg, d.Logger)
		if err != nil {
			return err
		}
		d.store = factory
		d.Repos = factory.NewRepositories()

	case config.StoreDriverMemory:
		d.store = memoryBackend{}
		d.Repos = memory.NewRepositories()
		d.Logger.Warn("using in-memory resource store, data is lost on restart")

	default:
		return fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	d.Logger.Info("repositories initialized", zap.String("driver", cfg.Store.Driver))
	return nil
}

// initAuth builds the token service, optionally backed by the Redis revocation list
func (d *Dependencies) initAuth(ctx context.Context, cfg *config.Config) error {
	var opts []auth.TokenOption

	if cfg.Redis.URL != "" {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		d.redis = client
		d.revoker = auth.NewRedisRevoker(client, cfg.Redis.KeyPrefix)
		opts = append(opts, auth.WithRevoker(d.revoker))
		d.Logger.Info("credential revocation enabled")
	} else {
		d.Logger.Warn("REDIS_URL not set, logout will not revoke outstanding credentials")
	}

	if !cfg.IsDevelopment() && !cfg.Auth.CookieSecure && cfg.Auth.CookieSameSite != "none" {
		d.Logger.Warn("session cookie is sent without the Secure attribute outside development",
			zap.String("environment", cfg.Environment))
	}

	d.Tokens = auth.NewTokenService(cfg.Auth, d.Logger, opts...)
	d.AuthHandler = auth.NewHandler(cfg.Auth, d.Tokens, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Tokens, cfg.Auth.CookieName, d.Logger)
	return nil
}

// HealthChecks returns the dependencies checked by the readiness endpoint
func (d *Dependencies) HealthChecks() map[string]repositories.HealthChecker {
	checks := map[string]repositories.HealthChecker{
		"store": d.store,
	}
	if d.revoker != nil {
		checks["redis"] = d.revoker
	}
	return checks
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.store != nil {
		if err := d.store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close resource store: %w", err))
		} else {
			d.Logger.Info("resource store closed")
		}
	}

	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

// memoryBackend has nothing to ping or release
type memoryBackend struct{}

func (memoryBackend) HealthCheck(context.Context) error { return nil }

func (memoryBackend) Close(context.Context) error { return nil }
