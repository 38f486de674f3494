// Package confidence turns validation deductions into a trust score for the
// extracted bill data.
package confidence

import (
	"github.com/shopspring/decimal"

	"gstaudit/internal/domain"
)

var (
	one         = decimal.NewFromInt(1)
	highFloor   = decimal.RequireFromString("0.90")
	mediumFloor = decimal.RequireFromString("0.70")
)

const (
	disclaimerMedium = "Confidence below 90%: not recommended for legal disputes. Verify the extracted data against the printed bill before taking action."
	disclaimerLow    = "Confidence below 70%: the extracted data is unreliable. Re-capture the bill or verify every figure manually before relying on this result."
)

// Score is 1 minus the summed deductions, clamped to [0, 1].
func Score(deduction decimal.Decimal) decimal.Decimal {
	s := one.Sub(deduction)
	if s.IsNegative() {
		return decimal.Zero
	}
	if s.GreaterThan(one) {
		return one
	}
	return s
}

// BandFor classifies a score.
func BandFor(score decimal.Decimal) domain.ConfidenceBand {
	switch {
	case score.GreaterThanOrEqual(highFloor):
		return domain.BandHigh
	case score.GreaterThanOrEqual(mediumFloor):
		return domain.BandMedium
	default:
		return domain.BandLow
	}
}

// Disclaimer is the advisory attached to results that are not HIGH confidence.
func Disclaimer(band domain.ConfidenceBand) string {
	switch band {
	case domain.BandHigh:
		return ""
	case domain.BandMedium:
		return disclaimerMedium
	default:
		return disclaimerLow
	}
}
