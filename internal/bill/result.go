package bill

import (
	"github.com/shopspring/decimal"

	"gstaudit/internal/domain"
)

// Warning is a single validation finding. Penalty is the confidence deduction it carries.
type Warning struct {
	RuleKey  string
	Severity domain.WarningSeverity
	Message  string
	Penalty  decimal.Decimal
}

// String renders the warning the way callers display it.
func (w Warning) String() string {
	return w.Severity.Icon() + " " + w.Message
}

// Discrepancy is the signed difference between charged and correct GST.
// A positive Amount means the customer was overcharged.
type Discrepancy struct {
	Found   bool
	Amount  decimal.Decimal
	Details []string
}

// Result is the analysis of one bill. It is built once and never mutated.
type Result struct {
	VendorName string
	BillNumber string
	Date       string
	GSTIN      string

	Items []LineItem

	GrossAmount decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal

	Charged Totals
	Correct Totals

	Discrepancy Discrepancy

	ConfidenceScore decimal.Decimal
	Band            domain.ConfidenceBand
	Warnings        []Warning
	Disclaimer      string
}

// Response is the wire shape returned to API and CLI callers.
type Response struct {
	RestaurantName     string           `json:"restaurant_name"`
	BillNumber         string           `json:"bill_number"`
	Date               string           `json:"date"`
	GSTIN              string           `json:"gstin"`
	Items              []ItemResponse   `json:"items"`
	GrossAmount        float64          `json:"gross_amount"`
	Discount           float64          `json:"discount"`
	Subtotal           float64          `json:"subtotal"`
	BillCharges        TotalsResponse   `json:"bill_charges"`
	CorrectCalculation TotalsResponse   `json:"correct_calculation"`
	Discrepancy        DiscrepancyReply `json:"discrepancy"`
	ConfidenceScore    float64          `json:"confidence_score"`
	ConfidenceBand     string           `json:"confidence_band"`
	Warnings           []string         `json:"warnings"`
	Disclaimer         string           `json:"disclaimer,omitempty"`
}

// ItemResponse is one resolved line item in a Response.
type ItemResponse struct {
	ItemName   string  `json:"item_name"`
	Quantity   float64 `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Category   string  `json:"category"`
	GSTRate    float64 `json:"gst_rate"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
}

// TotalsResponse is a tax breakdown in a Response.
type TotalsResponse struct {
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	TotalGST   float64 `json:"total_gst"`
	GrandTotal float64 `json:"grand_total"`
}

// DiscrepancyReply is the discrepancy section of a Response.
type DiscrepancyReply struct {
	Found   bool     `json:"found"`
	Amount  float64  `json:"amount"`
	Details []string `json:"details"`
}

// Response converts the result into its wire shape.
func (r *Result) Response() Response {
	items := make([]ItemResponse, 0, len(r.Items))
	for i := range r.Items {
		it := &r.Items[i]
		items = append(items, ItemResponse{
			ItemName:   it.Name,
			Quantity:   it.Quantity.InexactFloat64(),
			TotalPrice: it.TotalPrice.InexactFloat64(),
			Category:   it.Category,
			GSTRate:    it.GSTRate.InexactFloat64(),
			CGST:       it.CGST.InexactFloat64(),
			SGST:       it.SGST.InexactFloat64(),
		})
	}
	warnings := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, w.String())
	}
	details := r.Discrepancy.Details
	if details == nil {
		details = []string{}
	}
	return Response{
		RestaurantName:     r.VendorName,
		BillNumber:         r.BillNumber,
		Date:               r.Date,
		GSTIN:              r.GSTIN,
		Items:              items,
		GrossAmount:        r.GrossAmount.InexactFloat64(),
		Discount:           r.Discount.InexactFloat64(),
		Subtotal:           r.Subtotal.InexactFloat64(),
		BillCharges:        totalsResponse(r.Charged),
		CorrectCalculation: totalsResponse(r.Correct),
		Discrepancy: DiscrepancyReply{
			Found:   r.Discrepancy.Found,
			Amount:  r.Discrepancy.Amount.InexactFloat64(),
			Details: details,
		},
		ConfidenceScore: r.ConfidenceScore.InexactFloat64(),
		ConfidenceBand:  string(r.Band),
		Warnings:        warnings,
		Disclaimer:      r.Disclaimer,
	}
}

func totalsResponse(t Totals) TotalsResponse {
	return TotalsResponse{
		CGST:       t.CGST.InexactFloat64(),
		SGST:       t.SGST.InexactFloat64(),
		TotalGST:   t.TotalGST.InexactFloat64(),
		GrandTotal: t.GrandTotal.InexactFloat64(),
	}
}
