package validator

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstaudit/internal/bill"
)

// Rule keys and messages for drafts that cannot be analyzed at all.
const (
	RuleNoItems    = "input.no_items"
	RuleNoSubtotal = "input.no_subtotal"

	MsgNoItems    = "no line items to analyze."
	MsgNoSubtotal = "subtotal missing or non-numeric; no meaningful comparison possible."
)

// Report is the outcome of validating one draft.
type Report struct {
	Warnings []bill.Warning
	// Deduction is the summed penalty of all warnings, before any clamping.
	Deduction decimal.Decimal
	// Unrecoverable is set when the draft cannot support a tax comparison.
	Unrecoverable bool
}

// Engine runs every registered check over a draft. It never fails: problems
// become warnings and confidence deductions.
type Engine struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEngine creates a validation engine over the given registry.
func NewEngine(registry *Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: registry, logger: logger}
}

// NewDefaultEngine creates an engine with every built-in check registered.
func NewDefaultEngine(logger *zap.Logger) *Engine {
	registry := NewRegistry()
	for _, v := range AllBuiltinValidators() {
		registry.Register(v)
	}
	return NewEngine(registry, logger)
}

// Validate checks the draft. Items must already be resolved.
func (e *Engine) Validate(d *bill.Draft) Report {
	if d == nil {
		return unrecoverable(warn(RuleNoItems, MsgNoItems, penaltyUnrecovered))
	}
	if len(d.Items) == 0 {
		return unrecoverable(warn(RuleNoItems, MsgNoItems, penaltyUnrecovered), skippedItems(d)...)
	}
	if d.SubtotalMissing {
		return unrecoverable(warn(RuleNoSubtotal, MsgNoSubtotal, penaltyUnrecovered))
	}

	rep := Report{Deduction: decimal.Zero}
	for _, v := range e.registry.All() {
		for _, w := range v.Validate(d) {
			rep.Warnings = append(rep.Warnings, w)
			rep.Deduction = rep.Deduction.Add(w.Penalty)
		}
	}

	e.logger.Debug("bill validated",
		zap.String("bill_number", d.BillNumber),
		zap.Int("items", len(d.Items)),
		zap.Int("warnings", len(rep.Warnings)),
		zap.String("deduction", rep.Deduction.String()),
	)
	return rep
}

// unrecoverable reports a draft that cannot be compared. The leading warning
// carries the full deduction; notes only explain it.
func unrecoverable(w bill.Warning, notes ...bill.Warning) Report {
	return Report{Warnings: append([]bill.Warning{w}, notes...), Deduction: w.Penalty, Unrecoverable: true}
}
