package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-now/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// GetRedisClient returns the process-wide Redis client for the configured address.
func GetRedisClient() *redisv9.Client {
	once.Do(func() {
		client = redisv9.NewClient(&redisv9.Options{
			Addr: config.GetRedisAddr(),
		})
	})
	return client
}

// ResetRedisClientForTest resets the Redis client singleton. Use only in tests.
func ResetRedisClientForTest() {
	once = sync.Once{}
	client = nil
}

// redisClient is the part of the go-redis API the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// RedisStore keeps values in Redis without expiry.
type RedisStore struct {
	client redisClient
}

func NewRedisStore(c redisClient) *RedisStore {
	return &RedisStore{client: c}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redisv9.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}
