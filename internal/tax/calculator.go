// Package tax computes the GST a bill should have charged and compares it with
// what the bill claims.
package tax

import (
	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// WeightedRate is the average of item rates weighted by each item's share of the
// pre-discount item total. It is zero when the items sum to zero.
func WeightedRate(items []bill.LineItem) decimal.Decimal {
	sumPrice, sumRated := sums(items)
	if !sumPrice.IsPositive() {
		return decimal.Zero
	}
	return sumRated.Div(sumPrice)
}

// Calculate returns the legally correct tax for the items, applied to the bill's
// stated post-discount subtotal. GST is levied on the discounted value, and a
// single weighted rate avoids having to know how a lump-sum discount was split
// across items. Intrastate only: the tax is split evenly into CGST and SGST.
// All amounts are rounded half-up to paise.
func Calculate(items []bill.LineItem, subtotal decimal.Decimal) bill.Totals {
	sumPrice, sumRated := sums(items)
	if !sumPrice.IsPositive() {
		return bill.Totals{
			CGST:       decimal.Zero,
			SGST:       decimal.Zero,
			IGST:       decimal.Zero,
			TotalGST:   decimal.Zero,
			GrandTotal: subtotal.Round(2),
		}
	}

	// subtotal × (Σ rate×price / Σ price) / 100, multiplied out first to keep precision.
	raw := subtotal.Mul(sumRated).Div(sumPrice).Div(hundred)
	total := raw.Round(2)
	half := raw.Div(two).Round(2)
	return bill.Totals{
		CGST:       half,
		SGST:       half,
		IGST:       decimal.Zero,
		TotalGST:   total,
		GrandTotal: subtotal.Add(total).Round(2),
	}
}

func sums(items []bill.LineItem) (sumPrice, sumRated decimal.Decimal) {
	sumPrice, sumRated = decimal.Zero, decimal.Zero
	for i := range items {
		sumPrice = sumPrice.Add(items[i].TotalPrice)
		sumRated = sumRated.Add(items[i].TotalPrice.Mul(items[i].GSTRate))
	}
	return sumPrice, sumRated
}
