package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gstaudit/internal/analysis"
	"gstaudit/internal/category"
	"gstaudit/internal/handler"
	"gstaudit/internal/port"
	"gstaudit/internal/reference"
	"gstaudit/internal/router"
	"gstaudit/internal/service"
	"gstaudit/internal/validator"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := reference.NewCatalog([]port.GSTRate{
		{Code: "08013200", Name: "Cashew nuts", Category: "Dry fruits", Rate: decimal.NewFromInt(5)},
	})
	resolver, err := category.NewResolver(catalog, category.Options{})
	require.NoError(t, err)
	engine := analysis.NewEngine(resolver, validator.NewDefaultEngine(nil), nil)
	svc := service.NewAnalysisService(engine, catalog, nil)

	log := zap.NewNop()
	return router.Setup(log, []string{"http://localhost:3000"},
		handler.NewBillHandler(svc, 1<<20, log),
		handler.NewGSTHandler(svc, log),
		handler.NewHealthHandler(nil, catalog.Len()),
	)
}

func TestRouter_AnalyzeEndToEnd(t *testing.T) {
	r := newServer(t)

	body := "Sure! Here is the JSON:\n```json\n" + `{
		"store_name": "Murugan Idli Shop", "bill_number": "MIS-0042",
		"items": [
			{"item_name": "Dosa", "quantity": 2, "total_price": 120},
			{"item_name": "Idli", "quantity": 1, "total_price": 50},
			{"item_name": "Parotta", "quantity": 3, "total_price": 60}
		],
		"gross_amount": 230, "discount": 0, "subtotal": 230,
		"cgst_charged": 5.75, "sgst_charged": 5.75, "total_gst_charged": 11.50, "grand_total": 241.50
	}` + "\n```"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills/analyze", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			CorrectCalculation struct {
				TotalGST float64 `json:"total_gst"`
			} `json:"correct_calculation"`
			Discrepancy struct {
				Found  bool    `json:"found"`
				Amount float64 `json:"amount"`
			} `json:"discrepancy"`
			ConfidenceScore float64  `json:"confidence_score"`
			Warnings        []string `json:"warnings"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 8.5, resp.Data.CorrectCalculation.TotalGST)
	assert.True(t, resp.Data.Discrepancy.Found)
	assert.Equal(t, 3.0, resp.Data.Discrepancy.Amount)
	assert.Equal(t, 1.0, resp.Data.ConfidenceScore)
	assert.Empty(t, resp.Data.Warnings)
}

func TestRouter_AnalyzeUnreadable(t *testing.T) {
	r := newServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/bills/analyze", strings.NewReader("blurry photo")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_Lookup(t *testing.T) {
	r := newServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/gst/lookup?q=08013200", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hsn_code":"08013200"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/gst/lookup", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_HealthAndCORS(t *testing.T) {
	r := newServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reference_rows":1`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/bills/analyze", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
