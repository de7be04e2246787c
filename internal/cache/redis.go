package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raph13009/notion-blogs/internal/logger"
)

const connectionTimeout = 2 * time.Second

// RedisStore persists JSON payloads in Redis under a shared key prefix so
// several replicas can reuse the same warmed snapshot.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger logger.Logger
}

// NewRedisClient creates a Redis client and verifies connectivity before
// returning it.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewRedisStore(client *redis.Client, prefix string, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: log,
	}
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	fullKey := s.key(key)

	raw, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("Redis error reading key",
			logger.String("redis_key", fullKey),
			logger.Error(err),
		)
		return false, fmt.Errorf("get %s: %w", fullKey, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupted entry is treated as a miss so the caller refetches.
		s.logger.Warn("Discarding undecodable cache entry",
			logger.String("redis_key", fullKey),
			logger.Error(err),
		)
		return false, nil
	}

	return true, nil
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	fullKey := s.key(key)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", fullKey, err)
	}

	if err := s.client.Set(ctx, fullKey, raw, ttl).Err(); err != nil {
		s.logger.Error("Redis error writing key",
			logger.String("redis_key", fullKey),
			logger.Duration("ttl", ttl),
			logger.Error(err),
		)
		return fmt.Errorf("set %s: %w", fullKey, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	fullKey := s.key(key)

	if err := s.client.Del(ctx, fullKey).Err(); err != nil {
		s.logger.Error("Redis error deleting key",
			logger.String("redis_key", fullKey),
			logger.Error(err),
		)
		return fmt.Errorf("delete %s: %w", fullKey, err)
	}

	return nil
}
