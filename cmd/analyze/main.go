// Command analyze audits one or more extracted bills from the command line.
// Each argument is a file holding the extraction model's output (JSON, or
// JSON wrapped in surrounding text); "-" reads standard input.
// Usage: go run ./cmd/analyze [-workers N] [-format json|csv] [-pretty] bill1.json bill2.txt ...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gstaudit/internal/analysis"
	"gstaudit/internal/app"
	"gstaudit/internal/bill"
	"gstaudit/internal/config"
	"gstaudit/internal/csvexport"
	"gstaudit/pkg/logger"
)

// report pairs an input with its analysis, or the reason none was possible.
type report struct {
	Source string         `json:"source"`
	Result *bill.Response `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	workers := flag.Int("workers", cfg.Analysis.Workers, "bills analyzed in parallel")
	format := flag.String("format", "json", "output format: json (one object per line) or csv")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	flag.Parse()
	if flag.NArg() == 0 || (*format != "json" && *format != "csv") {
		fmt.Fprintln(os.Stderr, "Usage: analyze [-workers N] [-format json|csv] [-pretty] FILE...")
		os.Exit(2)
	}

	// Logs go to stderr so stdout stays machine-readable.
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPath: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pipeline, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to build analysis pipeline", zap.Error(err))
	}
	defer func() { _ = pipeline.Close() }()

	reports, err := analyzeAll(ctx, pipeline.Engine, flag.Args(), *workers)
	if err != nil {
		log.Fatal("analysis aborted", zap.Error(err))
	}

	if *format == "csv" {
		err = writeCSV(os.Stdout, reports)
	} else {
		err = writeJSON(os.Stdout, reports, *pretty)
	}
	if err != nil {
		log.Fatal("writing output", zap.Error(err))
	}

	failed := false
	for i := range reports {
		if reports[i].Error != "" {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// analyzeAll runs the inputs through the engine with at most workers in
// flight. Reports keep argument order. Per-bill failures are recorded in the
// report; only I/O errors and cancellation abort the run.
func analyzeAll(ctx context.Context, engine *analysis.Engine, paths []string, workers int) ([]report, error) {
	reports := make([]report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			reports[i] = analyzeOne(engine, path, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func analyzeOne(engine *analysis.Engine, source string, raw []byte) report {
	res, err := engine.AnalyzeRaw(raw)
	if err != nil {
		return report{Source: source, Error: err.Error()}
	}
	resp := res.Response()
	return report{Source: source, Result: &resp}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, reports []report, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	for i := range reports {
		if err := enc.Encode(reports[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, reports []report) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for i := range reports {
		if err := cw.WriteAudit(reports[i].Source, reports[i].Result, reports[i].Error); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
