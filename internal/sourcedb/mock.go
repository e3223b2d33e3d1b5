package sourcedb

import (
	"context"

	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"github.com/stretchr/testify/mock"
)

// MockSourceStore is a mock implementation of SourceStore for testing.
type MockSourceStore struct {
	mock.Mock
}

var _ contract.SourceStore = &MockSourceStore{} // Compile-time check

// Load implements the SourceStore interface.
func (m *MockSourceStore) Load(ctx context.Context, spec schema.IndexSourceSpec) (schema.RawTable, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(schema.RawTable), args.Error(1)
}

// Ingest implements the SourceStore interface.
func (m *MockSourceStore) Ingest(ctx context.Context, kind schema.IndexKind, table schema.RawTable) (int, error) {
	args := m.Called(ctx, kind, table)
	return args.Int(0), args.Error(1)
}

// GetStatus implements the SourceStore interface.
func (m *MockSourceStore) GetStatus(ctx context.Context) (schema.SourceStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.SourceStatus), args.Error(1)
}

// Ping implements the SourceStore interface.
func (m *MockSourceStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the SourceStore interface.
func (m *MockSourceStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
