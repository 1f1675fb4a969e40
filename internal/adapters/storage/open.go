package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/metrics"
	"github.com/AchilleasB/hostel-booking/api-client/internal/config"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// Backend is an opened key-value store together with its release function.
type Backend struct {
	ports.KeyValueStore
	Name  string
	close func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open builds the store selected by cfg.SessionStore, sealed when a session
// secret is configured.
func Open(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Backend, error) {
	var b *Backend

	switch cfg.SessionStore {
	case config.StoreMemory:
		b = &Backend{KeyValueStore: NewMemoryStore(), Name: config.StoreMemory}

	case config.StoreSQLite, "":
		s, err := OpenSQLite(ctx, cfg.SessionPath, m)
		if err != nil {
			return nil, err
		}
		b = &Backend{KeyValueStore: s, Name: config.StoreSQLite, close: s.Close}

	case config.StorePostgres:
		s, err := OpenPostgres(ctx, cfg.DatabaseURL, m)
		if err != nil {
			return nil, err
		}
		b = &Backend{KeyValueStore: s, Name: config.StorePostgres, close: s.Close}

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		b = &Backend{
			KeyValueStore: NewRedisStore(client, cfg.RedisPrefix, m),
			Name:          config.StoreRedis,
			close:         client.Close,
		}

	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	if cfg.SessionSecret != "" {
		b.KeyValueStore = NewSealedStore(b.KeyValueStore, cfg.SessionSecret)
	}
	return b, nil
}
