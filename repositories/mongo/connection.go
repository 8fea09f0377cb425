package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/upb/sportsgear-api/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

var (
	// ErrFailedToConnect is returned when every connection attempt failed
	ErrFailedToConnect = errors.New("failed to connect to mongodb")

	// ErrHealthcheckFailed is returned when the primary does not answer a ping
	ErrHealthcheckFailed = errors.New("mongodb health check failed")
)

// Client wraps a connected mongo client and the application database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect dials MongoDB, retrying cold starts and brief network failures
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Client, error) {
	uri, err := cfg.ConnectionURI()
	if err != nil {
		return nil, err
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := dial(ctx, opts, cfg.ConnectTimeout)
		if err == nil {
			logger.Info("mongodb connection established",
				zap.String("connection", cfg.LogString()),
				zap.Int("attempt", attempt))
			return &Client{client: client, db: client.Database(cfg.Database), logger: logger}, nil
		}
		lastErr = err

		logger.Warn("mongodb connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnect, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnect, lastErr)
}

func dial(ctx context.Context, opts *options.ClientOptions, timeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// Collection returns a handle to the named collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// HealthCheck pings the primary
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// Close disconnects the client
func (c *Client) Close(ctx context.Context) error {
	c.logger.Info("closing mongodb connection")
	return c.client.Disconnect(ctx)
}
