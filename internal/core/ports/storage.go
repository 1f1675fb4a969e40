package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a KeyValueStore when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is the host storage facility the session record lives in.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// ErrInvalidValue is returned when a stored value exists but cannot be
// authenticated or decoded by the store.
var ErrInvalidValue = errors.New("stored value is invalid")
