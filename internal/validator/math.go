package validator

import (
	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
)

// Rule keys for arithmetic checks.
const (
	RuleItemsSumGross       = "math.items_sum_gross"
	RuleDiscountConsistency = "math.discount_consistency"
	RuleGrandTotal          = "math.grand_total"
)

// MathValidators returns the arithmetic consistency checks.
func MathValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		{key: RuleItemsSumGross, name: "Math: Items Sum to Gross", fn: checkItemsSumGross},
		{key: RuleDiscountConsistency, name: "Math: Discount Consistency", fn: checkDiscountConsistency},
		{key: RuleGrandTotal, name: "Math: Grand Total", fn: checkGrandTotal},
	}
}

func checkItemsSumGross(d *bill.Draft) []bill.Warning {
	sum := d.ItemsTotal()
	if sum.Sub(d.GrossAmount).Abs().LessThanOrEqual(mathTolerance) {
		return nil
	}
	return []bill.Warning{warnf(RuleItemsSumGross, penaltyStandard,
		"Items sum (%s) ≠ Gross amount (%s)", rupees(sum), rupees(d.GrossAmount))}
}

// checkDiscountConsistency runs for every bill: with no discount the subtotal
// must equal the gross amount.
func checkDiscountConsistency(d *bill.Draft) []bill.Warning {
	expected := d.GrossAmount.Sub(d.Discount)
	diff := expected.Sub(d.Subtotal).Abs()
	switch {
	case diff.LessThanOrEqual(mathTolerance):
		return nil
	case diff.LessThanOrEqual(minorTolerance):
		return []bill.Warning{infof(RuleDiscountConsistency, penaltyMinor,
			"Minor rounding difference: Gross - Discount = %s, bill shows subtotal %s",
			rupees(expected), rupees(d.Subtotal))}
	default:
		return []bill.Warning{warnf(RuleDiscountConsistency, penaltyStandard,
			"Gross (%s) - Discount (%s) ≠ Subtotal (%s)",
			rupees(d.GrossAmount), rupees(d.Discount), rupees(d.Subtotal))}
	}
}

func checkGrandTotal(d *bill.Draft) []bill.Warning {
	expected := d.Subtotal.Add(d.Charged.TotalGST)
	diff := expected.Sub(d.Charged.GrandTotal).Abs()
	switch {
	case diff.GreaterThan(mathTolerance):
		return []bill.Warning{warnf(RuleGrandTotal, penaltyGrandTotal,
			"Subtotal + GST (%s) ≠ Grand Total (%s)", rupees(expected), rupees(d.Charged.GrandTotal))}
	case diff.GreaterThan(roundOffTolerance):
		return []bill.Warning{infof(RuleGrandTotal, penaltyNone,
			"Grand total %s differs from subtotal + GST %s by %s (round-off)",
			rupees(d.Charged.GrandTotal), rupees(expected), rupees(diff))}
	default:
		return nil
	}
}

// nearestSlab reports whether rate is strictly within tolerance of one of the slabs.
func nearestSlab(rate decimal.Decimal, slabs []decimal.Decimal) bool {
	for _, s := range slabs {
		if rate.Sub(s).Abs().LessThan(rateTolerance) {
			return true
		}
	}
	return false
}
