package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/httpclient"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

const checkTimeout = 5 * time.Second

// Report follows the Kubernetes health check response shape.
type Report struct {
	Status    string           `json:"status" yaml:"status"`
	Timestamp string           `json:"timestamp" yaml:"timestamp"`
	Checks    map[string]Check `json:"checks" yaml:"checks"`
}

type Check struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Checker reports whether session storage and the hostel API are reachable.
type Checker struct {
	store    ports.KeyValueStore
	executor ports.RequestExecutor
	now      func() time.Time
}

func NewChecker(store ports.KeyValueStore, executor ports.RequestExecutor) *Checker {
	return &Checker{store: store, executor: executor, now: time.Now}
}

func (c *Checker) Report(ctx context.Context) Report {
	checks := map[string]Check{
		"storage": c.checkStorage(ctx),
		"api":     c.checkAPI(ctx),
	}

	status := "UP"
	for _, check := range checks {
		if check.Status != "UP" {
			status = "DOWN"
		}
	}
	return Report{
		Status:    status,
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
}

func (c *Checker) checkStorage(ctx context.Context) Check {
	if c.store == nil {
		return Check{Status: "DOWN", Message: "Session storage is not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := c.store.Ping(ctx); err != nil {
		return Check{Status: "DOWN", Message: "Cannot reach session storage"}
	}
	return Check{Status: "UP"}
}

// checkAPI treats any HTTP response as reachable; only transport failures
// count as down.
func (c *Checker) checkAPI(ctx context.Context) Check {
	if c.executor == nil {
		return Check{Status: "DOWN", Message: "API client is not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	_, err := c.executor.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/rooms"})
	var apiErr *httpclient.APIError
	if err != nil && !errors.As(err, &apiErr) {
		return Check{Status: "DOWN", Message: "Cannot reach hostel API"}
	}
	return Check{Status: "UP"}
}
