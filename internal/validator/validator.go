package validator

import (
	"gstaudit/internal/bill"
)

// Validator is the interface for a single built-in bill check.
type Validator interface {
	Validate(d *bill.Draft) []bill.Warning
	RuleKey() string
	RuleName() string
}

// BuiltinValidator wraps a check function and its metadata for the registry.
type BuiltinValidator struct {
	key  string
	name string
	fn   func(*bill.Draft) []bill.Warning
}

func (b *BuiltinValidator) Validate(d *bill.Draft) []bill.Warning { return b.fn(d) }
func (b *BuiltinValidator) RuleKey() string                       { return b.key }
func (b *BuiltinValidator) RuleName() string                      { return b.name }

// AllBuiltinValidators returns every built-in check in evaluation order.
func AllBuiltinValidators() []*BuiltinValidator {
	mathVals := MathValidators()
	logVals := LogicalValidators()
	reqVals := RequiredFieldValidators()
	fmtVals := FormatValidators()
	all := make([]*BuiltinValidator, 0, len(mathVals)+len(logVals)+len(reqVals)+len(fmtVals))
	all = append(all, mathVals...)
	all = append(all, logVals...)
	all = append(all, reqVals...)
	all = append(all, fmtVals...)
	return all
}
