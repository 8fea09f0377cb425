package mongo

import (
	"context"

	"github.com/upb/sportsgear-api/config"
	"github.com/upb/sportsgear-api/repositories"
	"go.uber.org/zap"
)

// RepositoryFactory owns the mongo client behind the resource stores
type RepositoryFactory struct {
	client *Client
	store  config.StoreConfig
	logger *zap.Logger
}

// NewRepositoryFactory connects to MongoDB
func NewRepositoryFactory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	client, err := Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}
	return &RepositoryFactory{client: client, store: cfg.Store, logger: logger}, nil
}

// NewRepositories creates the product and cart stores
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Products:  NewStore(f.client.Collection(f.store.ProductCollection), f.logger),
		CartItems: NewStore(f.client.Collection(f.store.CartCollection), f.logger),
	}
}

// HealthCheck pings the primary
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	return f.client.HealthCheck(ctx)
}

// Close disconnects from MongoDB
func (f *RepositoryFactory) Close(ctx context.Context) error {
	return f.client.Close(ctx)
}
