// Package app assembles the analysis pipeline from configuration. The server
// and the CLI share it so both classify items identically.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"gstaudit/internal/analysis"
	"gstaudit/internal/category"
	"gstaudit/internal/config"
	"gstaudit/internal/domain"
	"gstaudit/internal/port"
	"gstaudit/internal/reference"
	"gstaudit/internal/repository/postgres"
	"gstaudit/internal/validator"
)

// Pipeline is a fully wired analysis engine and the reference data behind it.
type Pipeline struct {
	Engine  *analysis.Engine
	Catalog *reference.Catalog
	// DB is nil unless the reference source is postgres.
	DB *sqlx.DB
}

// Close releases the database connection, if any.
func (p *Pipeline) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// Build loads reference data and wires resolver, validator and engine.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	p := &Pipeline{}

	var repo port.GSTRateRepository
	if cfg.Reference.Source == domain.ReferenceSourcePostgres {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		p.DB = db
		repo = postgres.NewGSTRateRepo(db)
	}

	catalog, err := reference.Load(ctx, cfg.Reference, repo)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	p.Catalog = catalog
	logger.Info("gst reference loaded",
		zap.String("source", string(cfg.Reference.Source)),
		zap.Int("rows", catalog.Len()),
	)

	rate := cfg.Analysis.DefaultRate
	resolver, err := category.NewResolver(catalog, category.Options{
		DefaultCategory: cfg.Analysis.DefaultCategory,
		DefaultRate:     &rate,
		Logger:          logger.Named("resolver"),
	})
	if err != nil {
		_ = p.Close()
		return nil, err
	}

	p.Engine = analysis.NewEngine(resolver, validator.NewDefaultEngine(logger.Named("validator")), logger.Named("analysis"))
	return p, nil
}
