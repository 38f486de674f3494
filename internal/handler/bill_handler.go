package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstaudit/internal/service"
)

// BillHandler handles bill analysis endpoints.
type BillHandler struct {
	analysisService service.AnalysisService
	maxBodyBytes    int64
	logger          *zap.Logger
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(analysisService service.AnalysisService, maxBodyBytes int64, logger *zap.Logger) *BillHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillHandler{analysisService: analysisService, maxBodyBytes: maxBodyBytes, logger: logger}
}

// Analyze handles POST /api/v1/bills/analyze
// @Summary Audit the GST charged on a bill
// @Description Accepts the extracted bill as JSON, or the raw text an extraction model returned, and reports the correct GST, any discrepancy and a confidence score.
// @Tags bills
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse{data=bill.Response} "Analysis result"
// @Failure 400 {object} APIResponse "Empty payload"
// @Failure 413 {object} APIResponse "Payload too large"
// @Failure 422 {object} APIResponse "No bill could be recovered"
// @Router /bills/analyze [post]
func (h *BillHandler) Analyze(c *gin.Context) {
	body := c.Request.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxBodyBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "bill payload exceeds maximum allowed size")
			return
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}

	result, err := h.analysisService.AnalyzeRaw(c.Request.Context(), raw)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	RespondOK(c, result.Response())
}
