package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstaudit/internal/app"
	"gstaudit/internal/config"
	"gstaudit/internal/handler"
	"gstaudit/internal/router"
	"gstaudit/internal/service"
	"gstaudit/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPath: cfg.Log.OutputPath})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pipeline, err := app.Build(ctx, cfg, log)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to build analysis pipeline: %w", err)
	}
	defer func() { _ = pipeline.Close() }()

	analysisSvc := service.NewAnalysisService(pipeline.Engine, pipeline.Catalog, log.Named("service"))

	billH := handler.NewBillHandler(analysisSvc, cfg.Server.MaxBodyBytes, log)
	gstH := handler.NewGSTHandler(analysisSvc, log)
	var db handler.Pinger
	if pipeline.DB != nil {
		db = pipeline.DB
	}
	healthH := handler.NewHealthHandler(db, pipeline.Catalog.Len())

	r := router.Setup(log, cfg.CORS.AllowedOrigins, billH, gstH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
