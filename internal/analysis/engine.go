// Package analysis runs the full audit pipeline over one bill: resolve item
// rates, validate the extraction, recompute tax, compare and score.
package analysis

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstaudit/internal/bill"
	"gstaudit/internal/category"
	"gstaudit/internal/confidence"
	"gstaudit/internal/domain"
	"gstaudit/internal/sanitize"
	"gstaudit/internal/tax"
	"gstaudit/internal/validator"
)

// Engine is safe for concurrent use; it holds no per-analysis state.
type Engine struct {
	resolver  *category.Resolver
	validator *validator.Engine
	logger    *zap.Logger
}

// NewEngine wires an analysis engine.
func NewEngine(resolver *category.Resolver, v *validator.Engine, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{resolver: resolver, validator: v, logger: logger}
}

// AnalyzeRaw sanitizes raw extraction output and analyzes it. The only error
// is domain.ErrNoDraft, when no structured bill can be recovered at all.
func (e *Engine) AnalyzeRaw(raw []byte) (*bill.Result, error) {
	d, err := sanitize.Draft(raw)
	if err != nil {
		return nil, err
	}
	return e.Analyze(d), nil
}

// Analyze audits a draft. It never fails: unusable input yields a result with
// zero confidence and a warning saying why. The caller's draft is not modified.
func (e *Engine) Analyze(draft *bill.Draft) *bill.Result {
	if draft == nil {
		draft = &bill.Draft{}
	}
	d := draft.Clone()
	e.resolver.ResolveItems(d.Items)

	report := e.validator.Validate(d)
	res := &bill.Result{
		VendorName:  d.VendorName,
		BillNumber:  d.BillNumber,
		Date:        d.Date,
		GSTIN:       d.GSTIN,
		Items:       d.Items,
		GrossAmount: d.GrossAmount,
		Discount:    d.Discount,
		Subtotal:    d.Subtotal,
		Charged:     d.Charged,
		Warnings:    report.Warnings,
	}

	if report.Unrecoverable {
		res.Correct = zeroTotals()
		res.Discrepancy = bill.Discrepancy{Amount: decimal.Zero, Details: []string{}}
		res.ConfidenceScore = decimal.Zero
		res.Band = domain.BandLow
		res.Disclaimer = confidence.Disclaimer(res.Band)
		e.logger.Info("bill not analyzable",
			zap.String("bill_number", d.BillNumber),
			zap.String("reason", report.Warnings[0].Message),
		)
		return res
	}

	res.Correct = tax.Calculate(d.Items, d.Subtotal)
	res.Discrepancy = tax.Compare(d, res.Correct)
	res.ConfidenceScore = confidence.Score(report.Deduction)
	res.Band = confidence.BandFor(res.ConfidenceScore)
	res.Disclaimer = confidence.Disclaimer(res.Band)

	e.logger.Info("bill analyzed",
		zap.String("vendor", d.VendorName),
		zap.String("bill_number", d.BillNumber),
		zap.Bool("discrepancy", res.Discrepancy.Found),
		zap.String("amount", res.Discrepancy.Amount.StringFixed(2)),
		zap.String("confidence", res.ConfidenceScore.StringFixed(2)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res
}

func zeroTotals() bill.Totals {
	return bill.Totals{
		CGST:       decimal.Zero,
		SGST:       decimal.Zero,
		IGST:       decimal.Zero,
		TotalGST:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
}
