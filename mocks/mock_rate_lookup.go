package mocks

import (
	"github.com/stretchr/testify/mock"

	"gstaudit/internal/port"
)

// MockRateLookup is a mock implementation of port.RateLookup.
type MockRateLookup struct {
	mock.Mock
}

func (m *MockRateLookup) Lookup(nameOrCode string) (port.GSTRate, bool) {
	args := m.Called(nameOrCode)
	return args.Get(0).(port.GSTRate), args.Bool(1)
}
