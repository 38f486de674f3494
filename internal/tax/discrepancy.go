package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
)

var (
	// discrepancyTolerance is the smallest GST difference reported as a discrepancy.
	discrepancyTolerance = decimal.RequireFromString("0.10")
	// itemRateTolerance is how far an item's rate may sit from the bill's apparent rate.
	itemRateTolerance = decimal.RequireFromString("0.5")
)

// Compare diffs the GST the bill charged against the correct calculation and
// explains the difference. Amount is positive when the bill overcharged.
func Compare(d *bill.Draft, correct bill.Totals) bill.Discrepancy {
	amount := d.Charged.TotalGST.Sub(correct.TotalGST).Round(2)
	out := bill.Discrepancy{
		Found:   amount.Abs().GreaterThan(discrepancyTolerance),
		Amount:  amount,
		Details: []string{},
	}

	if d.Discount.IsPositive() {
		line := fmt.Sprintf("Discount applied: ₹%s", d.Discount.StringFixed(2))
		if d.GrossAmount.IsPositive() {
			line += fmt.Sprintf(" (%s%%)", d.Discount.Div(d.GrossAmount).Mul(hundred).StringFixed(1))
		}
		out.Details = append(out.Details, line)
	}

	if !out.Found {
		return out
	}

	out.Details = append(out.Details, fmt.Sprintf("Bill charged ₹%s GST, but should be ₹%s",
		d.Charged.TotalGST.StringFixed(2), correct.TotalGST.StringFixed(2)))
	if amount.IsPositive() {
		out.Details = append(out.Details, fmt.Sprintf("Overcharged by ₹%s", amount.Abs().StringFixed(2)))
	} else {
		out.Details = append(out.Details, fmt.Sprintf("Undercharged by ₹%s", amount.Abs().StringFixed(2)))
	}

	out.Details = append(out.Details, itemRateDetails(d)...)
	return out
}

// itemRateDetails names every item whose own rate differs from the rate the bill
// appears to have applied uniformly.
func itemRateDetails(d *bill.Draft) []string {
	var details []string
	apparent, ok := d.ChargedRate()
	for i := range d.Items {
		item := &d.Items[i]
		if !ok {
			if item.GSTRate.IsZero() && d.Charged.TotalGST.IsPositive() {
				details = append(details, fmt.Sprintf("'%s' should have 0%% GST (charged on bill)", item.Name))
			}
			continue
		}
		if item.GSTRate.Sub(apparent).Abs().GreaterThan(itemRateTolerance) {
			details = append(details, fmt.Sprintf("'%s' should be taxed at %s%% GST (bill applies ~%s%%)",
				item.Name, item.GSTRate.String(), apparent.StringFixed(1)))
		}
	}
	return details
}
