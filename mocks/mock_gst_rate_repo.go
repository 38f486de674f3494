package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstaudit/internal/port"
)

// MockGSTRateRepo is a mock implementation of port.GSTRateRepository.
type MockGSTRateRepo struct {
	mock.Mock
}

func (m *MockGSTRateRepo) LoadAll(ctx context.Context) ([]port.GSTRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.GSTRate), args.Error(1)
}

func (m *MockGSTRateRepo) InsertBatch(ctx context.Context, rows []port.GSTRate) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}
