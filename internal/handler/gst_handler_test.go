package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstaudit/internal/domain"
	"gstaudit/internal/handler"
	"gstaudit/internal/port"
	"gstaudit/mocks"
)

func TestGSTHandler_Lookup(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewGSTHandler(mockSvc, nil)
	mockSvc.On("LookupRate", mock.Anything, "cashew").
		Return(&port.GSTRate{Code: "08013200", Name: "Cashew nuts", Category: "Dry fruits", Rate: decimal.NewFromInt(5)}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/gst/lookup?q=cashew", http.NoBody)

	h.Lookup(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			HSNCode string  `json:"hsn_code"`
			GSTRate float64 `json:"gst_rate"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "08013200", resp.Data.HSNCode)
	assert.Equal(t, 5.0, resp.Data.GSTRate)
	mockSvc.AssertExpectations(t)
}

func TestGSTHandler_Lookup_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewGSTHandler(mockSvc, nil)
	mockSvc.On("LookupRate", mock.Anything, "zzz").Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/gst/lookup?q=zzz", http.NoBody)

	h.Lookup(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}
