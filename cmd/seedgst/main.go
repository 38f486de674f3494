// Command seedgst loads the GST reference workbook into the gst_items table,
// or writes it out as a SQL seed file.
// Usage: go run ./cmd/seedgst -xlsx gst_items.xlsx [-sheet Sheet1] [-out db/seeds/gst_items.sql]
// Without -out the rows are inserted directly using the GSTAUDIT_DB_* settings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"gstaudit/internal/config"
	"gstaudit/internal/port"
	"gstaudit/internal/reference"
	"gstaudit/internal/repository/postgres"
	"gstaudit/pkg/logger"
)

const batchSize = 500

func main() {
	xlsxPath := flag.String("xlsx", "", "path to the GST reference workbook")
	sheet := flag.String("sheet", "", "sheet name (default: first sheet)")
	outPath := flag.String("out", "", "write a SQL seed file instead of inserting")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(*xlsxPath, *sheet, *outPath, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func run(xlsxPath, sheet, outPath string, log *zap.Logger) error {
	if xlsxPath == "" {
		return fmt.Errorf("-xlsx is required")
	}

	rows, err := reference.LoadWorkbook(xlsxPath, sheet)
	if err != nil {
		return err
	}
	rows = dedupe(rows)
	log.Info("workbook parsed", zap.String("path", xlsxPath), zap.Int("rows", len(rows)))

	if outPath != "" {
		if err := writeSeedFile(outPath, rows); err != nil {
			return err
		}
		log.Info("seed file written", zap.String("path", outPath),
			zap.Int("batches", (len(rows)+batchSize-1)/batchSize))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo := postgres.NewGSTRateRepo(db)
	total := 0
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := repo.InsertBatch(ctx, rows[i:end])
		if err != nil {
			return fmt.Errorf("insert batch at offset %d: %w", i, err)
		}
		total += n
	}
	log.Info("reference rows inserted", zap.Int("rows", total))
	return nil
}

// dedupe drops repeated code/name/rate combinations, keeping the first.
func dedupe(rows []port.GSTRate) []port.GSTRate {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, r := range rows {
		key := fmt.Sprintf("%s|%s|%s", r.Code, strings.ToLower(r.Name), r.Rate.StringFixed(2))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func writeSeedFile(path string, rows []port.GSTRate) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	var b strings.Builder
	fmt.Fprintf(&b, "-- GST reference seed data generated from Excel.\n-- %d rows in batches of %d.\nBEGIN;\n\n", len(rows), batchSize)
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		writeBatch(&b, rows[i:end])
	}
	b.WriteString("\nCOMMIT;\n")

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}

func writeBatch(b *strings.Builder, batch []port.GSTRate) {
	b.WriteString("INSERT INTO gst_items (hsn_code, item_name, item_category, gst_rate) VALUES\n")
	for i := range batch {
		r := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(b, "  ('%s', '%s', '%s', %s)",
			escapeSQL(r.Code), escapeSQL(r.Name), escapeSQL(r.Category), r.Rate.StringFixed(2))
	}
	b.WriteString(";\n")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
