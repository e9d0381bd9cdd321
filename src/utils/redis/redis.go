package redis_utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"classtrade/src/config"

	"github.com/redis/go-redis/v9"
)

const quoteSnapshotKey = "quotes:snapshot"

// RedisHandler encapsulates the Redis client and provides utility methods.
type RedisHandler struct {
	client *redis.Client
}

// NewRedisHandler initializes a new Redis handler.
func NewRedisHandler(cfg *config.Config) (*RedisHandler, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Databases.Redis.Host + ":" + cfg.Databases.Redis.Port,
		Username: cfg.Databases.Redis.Username,
		Password: cfg.Databases.Redis.Password, // Leave empty for no password
		DB:       cfg.Databases.Redis.Database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisHandler{client: client}, nil
}

// Set stores a key-value pair in Redis with an optional expiration.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// Get retrieves and deserializes the value of a key from Redis into the provided result.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("key does not exist: %s", key)
	} else if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal([]byte(data), result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

// SetQuoteSnapshot stores the latest quote snapshot used as a fallback when
// the live provider is unreachable.
func (r *RedisHandler) SetQuoteSnapshot(ctx context.Context, quotes map[string]float64, ttl time.Duration) error {
	return r.Set(ctx, quoteSnapshotKey, quotes, ttl)
}

// GetQuoteSnapshot retrieves the cached quote snapshot.
func (r *RedisHandler) GetQuoteSnapshot(ctx context.Context) (map[string]float64, error) {
	var quotes map[string]float64
	if err := r.Get(ctx, quoteSnapshotKey, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// Close closes the Redis client connection.
func (r *RedisHandler) Close() error {
	return r.client.Close()
}
