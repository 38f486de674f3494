package app

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gstaudit/internal/config"
	"gstaudit/internal/domain"
)

func baseConfig() *config.Config {
	return &config.Config{
		Reference: config.ReferenceConfig{Source: domain.ReferenceSourceNone},
		Analysis: config.AnalysisConfig{
			DefaultCategory: "Restaurant services",
			DefaultRate:     decimal.NewFromInt(5),
			Workers:         1,
		},
	}
}

func TestBuild_KeywordRulesOnly(t *testing.T) {
	p, err := Build(t.Context(), baseConfig(), zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	assert.Nil(t, p.DB)
	assert.Equal(t, 0, p.Catalog.Len())

	res, err := p.Engine.AnalyzeRaw([]byte(`{"items": [{"item_name": "Curd", "total_price": 80}],
		"subtotal": 80, "cgst_charged": 2, "sgst_charged": 2, "grand_total": 84}`))
	require.NoError(t, err)
	assert.True(t, res.Correct.TotalGST.IsZero())
	assert.True(t, res.Discrepancy.Found)
}

func TestBuild_MissingWorkbook(t *testing.T) {
	cfg := baseConfig()
	cfg.Reference = config.ReferenceConfig{
		Source:   domain.ReferenceSourceXLSX,
		XLSXPath: filepath.Join(t.TempDir(), "absent.xlsx"),
	}

	p, err := Build(t.Context(), cfg, zap.NewNop())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, domain.ErrReferenceUnavailable)
}

func TestBuild_OffSlabDefaultRate(t *testing.T) {
	cfg := baseConfig()
	cfg.Analysis.DefaultRate = decimal.NewFromInt(7)

	_, err := Build(t.Context(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, domain.ErrInvalidDefaultRate)
}
