package bill

import (
	"github.com/shopspring/decimal"

	"gstaudit/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a single priced entry on a bill. Name, Quantity, UnitPrice and
// TotalPrice come from extraction; the remaining fields are filled by the
// resolver and are not modified afterwards.
type LineItem struct {
	Name       string
	Quantity   decimal.Decimal
	UnitPrice  *decimal.Decimal
	TotalPrice decimal.Decimal

	HSNCode    string
	Category   string
	GSTRate    decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	RateSource domain.RateSource
}

// Totals is a tax/total breakdown, used both for the figures a bill claims
// and for the independently computed correct figures.
type Totals struct {
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	TotalGST   decimal.Decimal
	GrandTotal decimal.Decimal
}

// IssueKind classifies why the sanitizer could not take a field at face value.
type IssueKind string

const (
	// IssueUnreadable: present but not a number. Raw holds the value as given.
	IssueUnreadable IssueKind = "unreadable"
	// IssueMissing: absent from the extraction output and treated as 0.
	IssueMissing IssueKind = "missing"
	// IssueDerived: absent but reconstructed from other fields. Raw holds the derived value.
	IssueDerived IssueKind = "derived"
	// IssueSkipped: a line item entry that is not an object and was dropped.
	IssueSkipped IssueKind = "skipped"
)

// ParseIssue records an input field the sanitizer could not read as given.
type ParseIssue struct {
	Field string
	Raw   string
	Kind  IssueKind
}

// Draft is the structured bill produced by extraction. Every field may be
// missing or wrong; the validator decides how much to trust it.
type Draft struct {
	VendorName string
	BillNumber string
	Date       string
	GSTIN      string

	Items []LineItem

	GrossAmount decimal.Decimal
	Discount    decimal.Decimal
	// Subtotal is the post-discount amount as printed on the bill, never recomputed.
	Subtotal        decimal.Decimal
	SubtotalMissing bool

	Charged Totals

	Issues []ParseIssue
}

// Clone returns a deep copy so an analysis run never aliases the caller's draft.
func (d *Draft) Clone() *Draft {
	c := *d
	if d.Items != nil {
		c.Items = make([]LineItem, len(d.Items))
		for i := range d.Items {
			c.Items[i] = d.Items[i]
			if d.Items[i].UnitPrice != nil {
				up := *d.Items[i].UnitPrice
				c.Items[i].UnitPrice = &up
			}
		}
	}
	if d.Issues != nil {
		c.Issues = append([]ParseIssue(nil), d.Issues...)
	}
	return &c
}

// ItemsTotal sums the total price of every line item.
func (d *Draft) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range d.Items {
		sum = sum.Add(d.Items[i].TotalPrice)
	}
	return sum
}

// ChargedRate is the GST percentage the bill applied to its subtotal as a whole.
// The second value is false when the subtotal is not positive.
func (d *Draft) ChargedRate() (decimal.Decimal, bool) {
	if !d.Subtotal.IsPositive() {
		return decimal.Zero, false
	}
	return d.Charged.TotalGST.Div(d.Subtotal).Mul(hundred), true
}
