package validator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
)

// Rule keys for logical checks.
const (
	RuleRatePlausibility = "logic.rate_plausibility"
	RuleDefaultCategory  = "logic.default_category"
	RuleInterstateIGST   = "logic.interstate_igst"
	RuleNegativeAmounts  = "logic.negative_amounts"
)

// plausibleRates are the slabs a whole-bill charged rate is expected to land on.
var plausibleRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// LogicalValidators returns checks on the plausibility of the bill's tax treatment.
func LogicalValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		{key: RuleRatePlausibility, name: "Logical: Charged Rate Is a GST Slab", fn: checkRatePlausibility},
		{key: RuleDefaultCategory, name: "Logical: Items Without Category Match", fn: checkDefaultCategory},
		{key: RuleInterstateIGST, name: "Logical: Interstate IGST Unsupported", fn: checkInterstateIGST},
		{key: RuleNegativeAmounts, name: "Logical: Amounts Not Negative", fn: checkNegativeAmounts},
	}
}

func checkRatePlausibility(d *bill.Draft) []bill.Warning {
	rate, ok := d.ChargedRate()
	if !ok || nearestSlab(rate, plausibleRates) {
		return nil
	}
	return []bill.Warning{warnf(RuleRatePlausibility, penaltyStandard,
		"Unusual GST rate: %s (expected: 0%%, 5%%, 12%%, 18%%, or 28%%)", pct(rate))}
}

// checkDefaultCategory surfaces items the resolver could only classify by falling
// back to the default category. It reads resolved items, so it must run after resolution.
func checkDefaultCategory(d *bill.Draft) []bill.Warning {
	var names []string
	var first *bill.LineItem
	for i := range d.Items {
		item := &d.Items[i]
		if item.RateSource != domain.RateSourceDefault {
			continue
		}
		if first == nil {
			first = item
		}
		names = append(names, fmt.Sprintf("'%s'", item.Name))
	}
	if first == nil {
		return nil
	}
	return []bill.Warning{infof(RuleDefaultCategory, penaltyMinor,
		"No category match for %s; assumed %s at %s%% GST",
		strings.Join(names, ", "), first.Category, first.GSTRate.String())}
}

func checkInterstateIGST(d *bill.Draft) []bill.Warning {
	if !d.Charged.IGST.IsPositive() {
		return nil
	}
	return []bill.Warning{warnf(RuleInterstateIGST, penaltyInterstate,
		"Bill charges IGST (%s); interstate bills are not supported and the correct figures assume intrastate CGST+SGST",
		rupees(d.Charged.IGST))}
}

// checkNegativeAmounts flags every quantity or amount below zero, one warning per field.
func checkNegativeAmounts(d *bill.Draft) []bill.Warning {
	var out []bill.Warning
	flag := func(field string, v decimal.Decimal) {
		if v.IsNegative() {
			out = append(out, warnf(RuleNegativeAmounts, penaltyStandard,
				"Negative value for %s (%s); bill amounts cannot be below zero", field, v.String()))
		}
	}
	for i := range d.Items {
		it := &d.Items[i]
		flag(fmt.Sprintf("'%s' quantity", it.Name), it.Quantity)
		flag(fmt.Sprintf("'%s' total", it.Name), it.TotalPrice)
	}
	flag("gross amount", d.GrossAmount)
	flag("discount", d.Discount)
	flag("subtotal", d.Subtotal)
	flag("CGST", d.Charged.CGST)
	flag("SGST", d.Charged.SGST)
	flag("IGST", d.Charged.IGST)
	flag("total GST", d.Charged.TotalGST)
	flag("grand total", d.Charged.GrandTotal)
	return out
}
