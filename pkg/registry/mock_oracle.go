package registry

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockOracle is a mock implementation of the Oracle interface for testing.
type MockOracle struct {
	mock.Mock
}

// NewMockOracle creates a new MockOracle instance.
func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

// LocalImageExists mocks the local image check.
func (m *MockOracle) LocalImageExists(ctx context.Context, ref string) (Status, error) {
	args := m.Called(ctx, ref)

	status, _ := args.Get(0).(Status)

	return status, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// RemoteManifestExists mocks the remote manifest check.
func (m *MockOracle) RemoteManifestExists(ctx context.Context, ref string) (Status, error) {
	args := m.Called(ctx, ref)

	status, _ := args.Get(0).(Status)

	return status, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
