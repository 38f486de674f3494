package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstaudit/internal/bill"
	"gstaudit/internal/port"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) AnalyzeRaw(ctx context.Context, raw []byte) (*bill.Result, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bill.Result), args.Error(1)
}

func (m *MockAnalysisService) LookupRate(ctx context.Context, query string) (*port.GSTRate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.GSTRate), args.Error(1)
}
