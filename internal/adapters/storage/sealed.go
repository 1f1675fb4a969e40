package storage

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/gorilla/securecookie"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// SealedStore authenticates and encrypts values before handing them to the
// wrapped store. Values that fail to decode read as ports.ErrInvalidValue.
type SealedStore struct {
	inner ports.KeyValueStore
	codec *securecookie.SecureCookie
}

var _ ports.KeyValueStore = (*SealedStore)(nil)

func NewSealedStore(inner ports.KeyValueStore, secret string) *SealedStore {
	hashKey := sha512.Sum512([]byte("hostel-session-hash:" + secret))
	blockKey := sha256.Sum256([]byte("hostel-session-block:" + secret))

	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.MaxAge(0)
	codec.MaxLength(0)

	return &SealedStore{inner: inner, codec: codec}
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	var value string
	if err := s.codec.Decode(key, sealed, &value); err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrInvalidValue, err)
	}
	return value, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.codec.Encode(key, value)
	if err != nil {
		return fmt.Errorf("seal value: %w", err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *SealedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}
