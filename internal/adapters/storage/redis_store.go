package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/metrics"
	"github.com/AchilleasB/hostel-booking/api-client/internal/config"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStore keeps values as plain redis keys under a prefix.
type RedisStore struct {
	client  RedisClient
	prefix  string
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
}

var _ ports.KeyValueStore = (*RedisStore)(nil)

func NewRedisStore(client RedisClient, prefix string, m *metrics.Metrics) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		cb:      config.NewCircuitBreaker(config.RedisBreaker),
		metrics: m,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		value, err := s.client.Get(ctx, s.prefix+key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return value, nil
	})
	s.metrics.ObserveStorage("redis", "get", err)
	if err != nil {
		return "", err
	}
	value, ok := res.(string)
	if !ok {
		return "", ports.ErrNotFound
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, s.prefix+key, value, 0).Err()
	})
	s.metrics.ObserveStorage("redis", "set", err)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, s.prefix+key).Err()
	})
	s.metrics.ObserveStorage("redis", "delete", err)
	return err
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// BreakerState reports the circuit breaker state, for health reporting.
func (s *RedisStore) BreakerState() gobreaker.State {
	return s.cb.State()
}
