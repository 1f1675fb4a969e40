package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// SessionStore persists the session record under domain.SessionKey.
type SessionStore struct {
	kv     ports.KeyValueStore
	logger *slog.Logger
}

func NewSessionStore(kv ports.KeyValueStore, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		kv:     kv,
		logger: logger.With("component", "session-store"),
	}
}

// Get returns the current session, or nil when it is absent or unreadable.
func (s *SessionStore) Get(ctx context.Context) *domain.Session {
	return s.Load(ctx).Session
}

// Load reads the persisted record and reports whether it was present,
// absent or invalid. It never fails: storage errors read as absent.
func (s *SessionStore) Load(ctx context.Context) domain.Lookup {
	raw, err := s.kv.Get(ctx, domain.SessionKey)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return domain.Lookup{State: domain.SessionAbsent}
	case errors.Is(err, ports.ErrInvalidValue):
		s.logger.Warn("discarding unreadable session record", "err", err)
		return domain.Lookup{State: domain.SessionInvalid}
	case err != nil:
		s.logger.Warn("session storage read failed", "err", err)
		return domain.Lookup{State: domain.SessionAbsent}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return domain.Lookup{State: domain.SessionAbsent}
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.logger.Debug("malformed session record", "err", err)
		return domain.Lookup{State: domain.SessionInvalid}
	}
	return domain.Lookup{Session: &sess, State: domain.SessionPresent}
}

// Set replaces the persisted record. A nil session clears it.
func (s *SessionStore) Set(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return s.Clear(ctx)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, domain.SessionKey, string(data)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	err := s.kv.Delete(ctx, domain.SessionKey)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
