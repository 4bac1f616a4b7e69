package utils

import (
	"context" // Context for Redis operations
	"errors"  // redis.Nil detection
	"time"    // Key lifetimes

	"github.com/redis/go-redis/v9" // Redis client
)

const revokedPrefix = "revoked:" // key namespace of revoked token ids

// TokenRevoker records logged-out tokens until they would have expired anyway
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevoker keeps the revocation list in Redis
type RedisRevoker struct {
	rdb *redis.Client
}

// NewRedisRevoker returns a revoker backed by rdb
func NewRedisRevoker(rdb *redis.Client) *RedisRevoker {
	return &RedisRevoker{rdb: rdb}
}

// Revoke marks jti revoked for ttl. A non-positive ttl means the token has
// already expired and nothing is stored.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedPrefix+jti, 1, ttl).Err()
}

// IsRevoked reports whether jti was revoked and has not yet expired
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.rdb.Get(ctx, revokedPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, nil
}
