package postgres

import (
	"context"

	"github.com/upb/sportsgear-api/config"
	"github.com/upb/sportsgear-api/repositories"
	"go.uber.org/zap"
)

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db     *DB
	store  config.StoreConfig
	logger *zap.Logger
}

// NewRepositoryFactory opens the pool and creates the documents table
func NewRepositoryFactory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &RepositoryFactory{db: db, store: cfg.Store, logger: logger}, nil
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Products:  NewDocumentRepository(f.db, f.store.ProductCollection, f.logger),
		CartItems: NewDocumentRepository(f.db, f.store.CartCollection, f.logger),
	}
}

// HealthCheck pings the database
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	return f.db.HealthCheck(ctx)
}

// Close closes the database connection
func (f *RepositoryFactory) Close(context.Context) error {
	return f.db.Close()
}
