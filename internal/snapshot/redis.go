package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/angelmondragon/superstore-backend/pkg/redis"
)

// RedisClient is the subset of pkg/redis the backend needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SnapshotKey(key string) string
}

// RedisBackend stores each blob as a plain string without expiry.
type RedisBackend struct {
	client RedisClient
}

func NewRedisBackend(client RedisClient) (*RedisBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisBackend{client: client}, nil
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.client.SnapshotKey(key))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(raw), nil
}

func (r *RedisBackend) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.client.SnapshotKey(key), string(value), 0)
}
