package validator_test

import (
	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
	"gstaudit/internal/validator"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// validDraft is a consistent, fully resolved single-rate bill.
func validDraft() *bill.Draft {
	return &bill.Draft{
		VendorName: "Saravana Bhavan",
		BillNumber: "INV-1001",
		Date:       "2025-02-14",
		GSTIN:      "33AABCS1234F1Z5",
		Items: []bill.LineItem{
			{Name: "Masala Dosa", Quantity: dec("2"), TotalPrice: dec("120"), Category: "Restaurant services", GSTRate: dec("5"), RateSource: domain.RateSourceKeyword},
			{Name: "Idli", Quantity: dec("1"), TotalPrice: dec("80"), Category: "Restaurant services", GSTRate: dec("5"), RateSource: domain.RateSourceKeyword},
		},
		GrossAmount: dec("200"),
		Discount:    decimal.Zero,
		Subtotal:    dec("200"),
		Charged: bill.Totals{
			CGST:       dec("5"),
			SGST:       dec("5"),
			TotalGST:   dec("10"),
			GrandTotal: dec("210"),
		},
	}
}

func findValidator(key string) validator.Validator {
	for _, v := range validator.AllBuiltinValidators() {
		if v.RuleKey() == key {
			return v
		}
	}
	return nil
}
