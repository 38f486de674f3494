package reference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstaudit/internal/config"
	"gstaudit/internal/domain"
	"gstaudit/internal/reference"
	"gstaudit/mocks"
)

func TestLoad_Postgres(t *testing.T) {
	repo := new(mocks.MockGSTRateRepo)
	repo.On("LoadAll", mock.Anything).Return(sampleRows(), nil)

	c, err := reference.Load(context.Background(), config.ReferenceConfig{Source: domain.ReferenceSourcePostgres}, repo)
	require.NoError(t, err)
	assert.Equal(t, len(sampleRows()), c.Len())
	repo.AssertExpectations(t)
}

func TestLoad_PostgresFailure(t *testing.T) {
	repo := new(mocks.MockGSTRateRepo)
	repo.On("LoadAll", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := reference.Load(context.Background(), config.ReferenceConfig{Source: domain.ReferenceSourcePostgres}, repo)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrReferenceUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLoad_PostgresWithoutRepo(t *testing.T) {
	_, err := reference.Load(context.Background(), config.ReferenceConfig{Source: domain.ReferenceSourcePostgres}, nil)
	assert.True(t, errors.Is(err, domain.ErrReferenceUnavailable))
}

func TestLoad_XLSX(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"item_name", "gst_rate"},
		{"Masala Dosa", "5"},
		{"Fresh milk", "0"},
	})

	c, err := reference.Load(context.Background(), config.ReferenceConfig{Source: domain.ReferenceSourceXLSX, XLSXPath: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoad_None(t *testing.T) {
	c, err := reference.Load(context.Background(), config.ReferenceConfig{Source: domain.ReferenceSourceNone}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_UnknownSource(t *testing.T) {
	_, err := reference.Load(context.Background(), config.ReferenceConfig{Source: "redis"}, nil)
	assert.Error(t, err)
}
