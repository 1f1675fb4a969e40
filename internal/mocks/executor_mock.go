package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// MockExecutor implements ports.RequestExecutor with canned responses keyed
// by "METHOD path".
type MockExecutor struct {
	mu sync.Mutex

	Responses map[string]domain.Payload
	Errors    map[string]error

	Calls []ports.Request
}

var _ ports.RequestExecutor = (*MockExecutor)(nil)

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Responses: make(map[string]domain.Payload),
		Errors:    make(map[string]error),
	}
}

func (m *MockExecutor) Do(ctx context.Context, req ports.Request) (domain.Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	key := req.Method + " " + req.Path
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if p, ok := m.Responses[key]; ok {
		return p, nil
	}
	return domain.Payload{}, nil
}

func (m *MockExecutor) LastCall() (ports.Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ports.Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
