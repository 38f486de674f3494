package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstaudit/internal/port"
)

type gstRateRepo struct {
	db *sqlx.DB
}

// NewGSTRateRepo creates a new PostgreSQL-backed GSTRateRepository.
func NewGSTRateRepo(db *sqlx.DB) port.GSTRateRepository {
	return &gstRateRepo{db: db}
}

// LoadAll returns the rows currently in force, in insertion order so that
// catalog lookups resolve ties the same way on every load.
func (r *gstRateRepo) LoadAll(ctx context.Context) ([]port.GSTRate, error) {
	var entries []port.GSTRate
	err := r.db.SelectContext(ctx, &entries,
		`SELECT hsn_code, item_name, item_category, gst_rate
		 FROM gst_items
		 WHERE effective_to IS NULL OR effective_to >= CURRENT_DATE
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("selecting gst_items: %w", err)
	}
	return entries, nil
}

// InsertBatch appends reference rows in a single transaction.
func (r *gstRateRepo) InsertBatch(ctx context.Context, rows []port.GSTRate) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareNamedContext(ctx,
		`INSERT INTO gst_items (hsn_code, item_name, item_category, gst_rate)
		 VALUES (:hsn_code, :item_name, :item_category, :gst_rate)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		if _, err := stmt.ExecContext(ctx, rows[i]); err != nil {
			return 0, fmt.Errorf("inserting row %d (%s): %w", i, rows[i].Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(rows), nil
}
