package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gstaudit/internal/analysis"
	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
	"gstaudit/internal/port"
)

// AnalysisService audits bills and answers reference rate lookups.
type AnalysisService interface {
	AnalyzeRaw(ctx context.Context, raw []byte) (*bill.Result, error)
	LookupRate(ctx context.Context, query string) (*port.GSTRate, error)
}

type analysisService struct {
	engine *analysis.Engine
	lookup port.RateLookup
	logger *zap.Logger
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(engine *analysis.Engine, lookup port.RateLookup, logger *zap.Logger) AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analysisService{engine: engine, lookup: lookup, logger: logger}
}

func (s *analysisService) AnalyzeRaw(ctx context.Context, raw []byte) (*bill.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("%w: empty bill payload", domain.ErrInvalidRequest)
	}
	res, err := s.engine.AnalyzeRaw(raw)
	if err != nil {
		s.logger.Warn("extraction output rejected", zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (s *analysisService) LookupRate(ctx context.Context, query string) (*port.GSTRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if s.lookup == nil {
		return nil, domain.ErrReferenceUnavailable
	}
	entry, ok := s.lookup.Lookup(query)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}
