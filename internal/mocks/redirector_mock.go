package mocks

import (
	"sync"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// MockRedirector records redirect targets instead of navigating.
type MockRedirector struct {
	mu      sync.Mutex
	Targets []string
}

var _ ports.Redirector = (*MockRedirector)(nil)

func (m *MockRedirector) Redirect(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Targets = append(m.Targets, target)
}

func (m *MockRedirector) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Targets)
}
