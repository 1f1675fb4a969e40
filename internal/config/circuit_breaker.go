package config

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

const (
	RedisBreaker    = "Redis-Session"
	PostgresBreaker = "PostgreSQL-Session"
)

const (
	breakerTripAfter   = 3
	breakerHalfOpenMax = 3
	breakerInterval    = 10 * time.Second
	breakerOpenDefault = 30 * time.Second
)

// breakerOpenFor is how long each session backend stays open before a trial
// call is allowed.
var breakerOpenFor = map[string]time.Duration{
	RedisBreaker:    5 * time.Second,
	PostgresBreaker: 10 * time.Second,
}

// NewCircuitBreaker returns the breaker guarding a session backend. It trips
// after breakerTripAfter consecutive failures and reports state changes on
// the default logger.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	timeout, ok := breakerOpenFor[name]
	if !ok {
		timeout = breakerOpenDefault
	}
	logger := slog.Default().With("component", "circuit-breaker")

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenMax,
		Interval:    breakerInterval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("session backend breaker changed state", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}
