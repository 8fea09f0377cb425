package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker keeps the token ids of credentials invalidated before their expiry
type Revoker interface {
	// IsRevoked reports whether the token id is on the list
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// Revoke lists the token id for ttl, which should match the credential's remaining lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// RedisRevoker stores revoked token ids as expiring Redis keys
type RedisRevoker struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRevoker creates a revoker using keys of the form <prefix><jti>
func NewRedisRevoker(client redis.UniversalClient, prefix string) *RedisRevoker {
	return &RedisRevoker{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL and verifies the server answers
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// IsRevoked reports whether jti has been revoked
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, r.key(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read revocation: %w", err)
	}
	return true, nil
}

// Revoke records jti as revoked for ttl
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation: %w", err)
	}
	return nil
}

// HealthCheck pings Redis
func (r *RedisRevoker) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRevoker) key(jti string) string {
	return r.prefix + jti
}
