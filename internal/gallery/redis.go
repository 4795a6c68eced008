package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check
var _ Persistence = (*redisPersistence)(nil)

type redisPersistence struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPersistence returns a Persistence backed by a Redis string per key.
func NewRedisPersistence(client *redis.Client, logger *zap.Logger) Persistence {
	return &redisPersistence{
		client: client,
		logger: logger.Named("RedisPersistence"),
	}
}

func (r *redisPersistence) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to load key from redis", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *redisPersistence) Store(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.logger.Error("failed to store key in redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
