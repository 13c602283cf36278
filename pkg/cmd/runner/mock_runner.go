package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of the Runner interface for testing.
// Expectations receive the arguments as a single []string.
type MockRunner struct {
	mock.Mock
}

// NewMockRunner creates a new MockRunner instance.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run mocks an external process invocation.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	called := m.Called(ctx, name, args)

	result, _ := called.Get(0).(Result)

	return result, called.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
