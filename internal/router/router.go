package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstaudit/internal/handler"
	"gstaudit/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	allowedOrigins []string,
	billH *handler.BillHandler,
	gstH *handler.GSTHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	bills := v1.Group("/bills")
	bills.POST("/analyze", billH.Analyze)

	gst := v1.Group("/gst")
	gst.GET("/lookup", gstH.Lookup)

	return r
}
