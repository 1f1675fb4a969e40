package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/sony/gobreaker"
	_ "modernc.org/sqlite"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/metrics"
	"github.com/AchilleasB/hostel-booking/api-client/internal/config"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// Dialect holds the per-driver differences of the SQL store.
type Dialect struct {
	Name string
	// Bind returns the placeholder for the n-th (1-based) argument.
	Bind func(n int) string
}

var (
	SQLite = Dialect{Name: "sqlite", Bind: func(int) string { return "?" }}

	Postgres = Dialect{Name: "postgres", Bind: func(n int) string { return fmt.Sprintf("$%d", n) }}
)

// SQLStore keeps values in a single kv_store table.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics

	getQuery    string
	setQuery    string
	deleteQuery string
}

var _ ports.KeyValueStore = (*SQLStore)(nil)

// NewSQLStore prepares the schema on db. cb may be nil.
func NewSQLStore(ctx context.Context, db *sql.DB, dialect Dialect, cb *gobreaker.CircuitBreaker, m *metrics.Metrics) (*SQLStore, error) {
	s := &SQLStore{
		db:      db,
		dialect: dialect,
		cb:      cb,
		metrics: m,
		getQuery: fmt.Sprintf(
			"SELECT item_value FROM kv_store WHERE item_key = %s",
			dialect.Bind(1)),
		setQuery: fmt.Sprintf(
			`INSERT INTO kv_store (item_key, item_value) VALUES (%s, %s)
			 ON CONFLICT (item_key) DO UPDATE SET item_value = excluded.item_value`,
			dialect.Bind(1), dialect.Bind(2)),
		deleteQuery: fmt.Sprintf(
			"DELETE FROM kv_store WHERE item_key = %s",
			dialect.Bind(1)),
	}

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv_store (
		item_key   TEXT PRIMARY KEY,
		item_value TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create kv_store table: %w", err)
	}
	return s, nil
}

// OpenSQLite opens (creating if needed) the sqlite database at path.
func OpenSQLite(ctx context.Context, path string, m *metrics.Metrics) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s, err := NewSQLStore(ctx, db, SQLite, nil, m)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPostgres connects to dbURL and guards calls with a circuit breaker.
func OpenPostgres(ctx context.Context, dbURL string, m *metrics.Metrics) (*SQLStore, error) {
	if dbURL == "" {
		return nil, errors.New("DB_CONNECTION_STRING is required for the postgres session store")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	s, err := NewSQLStore(ctx, db, Postgres, config.NewCircuitBreaker(config.PostgresBreaker), m)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	if s.cb == nil {
		return fn()
	}
	return s.cb.Execute(fn)
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	res, err := s.execute(func() (interface{}, error) {
		var value string
		err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			// A missing row is not a dependency failure.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return value, nil
	})
	s.metrics.ObserveStorage(s.dialect.Name, "get", err)
	if err != nil {
		return "", err
	}
	value, ok := res.(string)
	if !ok {
		return "", ports.ErrNotFound
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.execute(func() (interface{}, error) {
		_, err := s.db.ExecContext(ctx, s.setQuery, key, value)
		return nil, err
	})
	s.metrics.ObserveStorage(s.dialect.Name, "set", err)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.execute(func() (interface{}, error) {
		_, err := s.db.ExecContext(ctx, s.deleteQuery, key)
		return nil, err
	})
	s.metrics.ObserveStorage(s.dialect.Name, "delete", err)
	return err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Name() string {
	return s.dialect.Name
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
