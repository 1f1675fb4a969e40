package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/health"
	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/httpclient"
	"github.com/AchilleasB/hostel-booking/api-client/internal/mocks"
)

func TestChecker_AllUp(t *testing.T) {
	checker := health.NewChecker(mocks.NewMockKeyValueStore(), mocks.NewMockExecutor())

	report := checker.Report(context.Background())
	if report.Status != "UP" {
		t.Errorf("expected UP, got %s (%+v)", report.Status, report.Checks)
	}
	if _, err := time.Parse(time.RFC3339, report.Timestamp); err != nil {
		t.Errorf("expected RFC3339 timestamp, got %q", report.Timestamp)
	}
}

func TestChecker_APIErrorStatusCountsAsReachable(t *testing.T) {
	executor := mocks.NewMockExecutor()
	executor.Errors["GET /rooms"] = &httpclient.APIError{Status: 401, Message: "Unauthorized"}
	checker := health.NewChecker(mocks.NewMockKeyValueStore(), executor)

	if got := checker.Report(context.Background()).Checks["api"].Status; got != "UP" {
		t.Errorf("expected api UP, got %s", got)
	}
}

func TestChecker_Down(t *testing.T) {
	kv := mocks.NewMockKeyValueStore()
	kv.PingError = errors.New("refused")
	executor := mocks.NewMockExecutor()
	executor.Errors["GET /rooms"] = errors.New("dial tcp: connection refused")

	report := health.NewChecker(kv, executor).Report(context.Background())
	if report.Status != "DOWN" {
		t.Errorf("expected DOWN, got %s", report.Status)
	}
	for _, name := range []string{"storage", "api"} {
		if report.Checks[name].Status != "DOWN" {
			t.Errorf("expected %s DOWN, got %+v", name, report.Checks[name])
		}
	}
}

func TestChecker_NilDependencies(t *testing.T) {
	report := health.NewChecker(nil, nil).Report(context.Background())
	if report.Status != "DOWN" {
		t.Errorf("expected DOWN, got %s", report.Status)
	}
}
