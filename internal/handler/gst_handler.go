package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstaudit/internal/service"
)

// GSTHandler handles reference rate lookups.
type GSTHandler struct {
	analysisService service.AnalysisService
	logger          *zap.Logger
}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler(analysisService service.AnalysisService, logger *zap.Logger) *GSTHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GSTHandler{analysisService: analysisService, logger: logger}
}

// lookupResponse is a reference row as returned by the lookup endpoint.
type lookupResponse struct {
	HSNCode  string  `json:"hsn_code"`
	ItemName string  `json:"item_name"`
	Category string  `json:"category"`
	GSTRate  float64 `json:"gst_rate"`
}

// Lookup handles GET /api/v1/gst/lookup?q=
// @Summary Look up the GST rate for an item or HSN/SAC code
// @Tags gst
// @Produce json
// @Param q query string true "Item name or HSN/SAC code"
// @Success 200 {object} APIResponse{data=lookupResponse}
// @Failure 400 {object} APIResponse "Missing query"
// @Failure 404 {object} APIResponse "No reference row matches"
// @Router /gst/lookup [get]
func (h *GSTHandler) Lookup(c *gin.Context) {
	entry, err := h.analysisService.LookupRate(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, lookupResponse{
		HSNCode:  entry.Code,
		ItemName: entry.Name,
		Category: entry.Category,
		GSTRate:  entry.Rate.InexactFloat64(),
	})
}
