package clientstate

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soulsetjourneys/soulset-backend/internal/logger"
)

type redisStore struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewRedisStore connects to the Redis instance named by REDIS_ADDR and
// returns a Store backed by it. Callers fall back to NewMemoryStore
// when the env var is absent.
func NewRedisStore(log *logger.Logger) (Store, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{rdb: rdb, log: log.With("service", "clientstate_redis")}, nil
}

func redisKey(clientID, key string) string {
	return "clientstate:" + clientID + ":" + key
}

func (s *redisStore) Get(ctx context.Context, clientID, key string) (string, error) {
	v, err := s.rdb.Get(ctx, redisKey(clientID, key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *redisStore) Set(ctx context.Context, clientID, key, value string) error {
	if err := s.rdb.Set(ctx, redisKey(clientID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *redisStore) Increment(ctx context.Context, clientID, key string) (int64, error) {
	n, err := s.rdb.Incr(ctx, redisKey(clientID, key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return n, nil
}
