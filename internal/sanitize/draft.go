package sanitize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
)

// Field aliases, in order of preference.
var (
	vendorKeys     = []string{"store_name", "vendor_name", "restaurant_name", "merchant_name"}
	billNumberKeys = []string{"bill_number", "invoice_number", "bill_no"}
	dateKeys       = []string{"date", "bill_date", "invoice_date"}
	gstinKeys      = []string{"gstin", "gst_number", "seller_gstin"}
	itemsKeys      = []string{"items", "line_items"}

	itemNameKeys  = []string{"item_name", "name", "original_name", "description"}
	quantityKeys  = []string{"quantity", "qty"}
	unitPriceKeys = []string{"unit_price", "rate", "price"}
	itemTotalKeys = []string{"total_price", "amount", "total"}

	grossKeys    = []string{"gross_amount", "gross_total", "items_total"}
	discountKeys = []string{"discount", "discount_amount"}
	subtotalKeys = []string{"subtotal", "sub_total", "taxable_amount"}

	chargedKeys    = []string{"charged", "bill_charges"}
	totalGSTKeys   = []string{"total_gst_charged", "total_gst"}
	cgstKeys       = []string{"cgst_charged", "cgst"}
	sgstKeys       = []string{"sgst_charged", "sgst"}
	igstKeys       = []string{"igst_charged", "igst"}
	grandTotalKeys = []string{"grand_total", "total_amount"}
)

var two = decimal.NewFromInt(2)

// Draft repairs and decodes raw extraction output. It fails only when no JSON
// object can be recovered; missing or unreadable amounts become zero values and
// ParseIssues for the validator to weigh.
func Draft(raw []byte) (*bill.Draft, error) {
	text := Repair(raw)
	if text == nil {
		return nil, fmt.Errorf("%w: no JSON object in extraction output (raw: %s)", domain.ErrNoDraft, truncate(string(raw), 200))
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: decoding repaired output: %v (raw: %s)", domain.ErrNoDraft, err, truncate(string(text), 200))
	}
	return FromMap(m), nil
}

// FromMap builds a draft from an already-decoded object.
func FromMap(m map[string]any) *bill.Draft {
	r := &reader{}
	d := &bill.Draft{
		VendorName: r.str(m, vendorKeys),
		BillNumber: r.str(m, billNumberKeys),
		Date:       r.str(m, dateKeys),
		GSTIN:      r.str(m, gstinKeys),
	}

	if raw, ok := first(m, itemsKeys); ok {
		if list, ok := raw.([]any); ok {
			for i, el := range list {
				obj, ok := el.(map[string]any)
				if !ok {
					r.issue(fmt.Sprintf("items[%d]", i), fmt.Sprint(el), bill.IssueSkipped)
					continue
				}
				d.Items = append(d.Items, r.item(obj, i))
			}
		}
	}

	d.GrossAmount = r.required(m, grossKeys, "gross_amount")
	d.Discount, _ = r.num(m, discountKeys, "discount")
	var subtotalOK bool
	d.Subtotal, subtotalOK = r.num(m, subtotalKeys, "subtotal")
	d.SubtotalMissing = !subtotalOK

	// Claimed totals may be flat or nested under "charged".
	src := m
	if raw, ok := first(m, chargedKeys); ok {
		if obj, ok := raw.(map[string]any); ok {
			src = obj
		}
	}
	cgst, cgstOK := r.num(src, cgstKeys, "cgst")
	sgst, sgstOK := r.num(src, sgstKeys, "sgst")
	igst, igstOK := r.num(src, igstKeys, "igst")
	d.Charged.IGST = igst

	total, totalOK := r.num(src, totalGSTKeys, "total_gst")
	switch {
	case totalOK, r.has("total_gst"):
	case cgstOK || sgstOK || igstOK:
		// The split is on the bill even though the total is not. CGST and SGST
		// are always equal, so one half stands in for a missing other.
		if cgstOK && !sgstOK {
			sgst, sgstOK = cgst, true
		} else if sgstOK && !cgstOK {
			cgst, cgstOK = sgst, true
		}
		total = cgst.Add(sgst).Add(igst)
		r.issue("total_gst", total.StringFixed(2), bill.IssueDerived)
	default:
		r.issue("total_gst", "", bill.IssueMissing)
	}
	d.Charged.TotalGST = total

	// A missing CGST or SGST is half of the GST that IGST does not account for.
	half := total.Sub(igst).Div(two).Round(2)
	d.Charged.CGST, d.Charged.SGST = cgst, sgst
	if !cgstOK {
		d.Charged.CGST = half
	}
	if !sgstOK {
		d.Charged.SGST = half
	}
	d.Charged.GrandTotal = r.required(src, grandTotalKeys, "grand_total")

	d.Issues = r.issues
	return d
}

type reader struct {
	issues []bill.ParseIssue
}

func (r *reader) item(obj map[string]any, idx int) bill.LineItem {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", idx, name) }

	it := bill.LineItem{Name: r.str(obj, itemNameKeys)}

	qty, ok := r.num(obj, quantityKeys, field("quantity"))
	if !ok {
		qty = decimal.NewFromInt(1)
	}
	it.Quantity = qty

	if up, ok := r.num(obj, unitPriceKeys, field("unit_price")); ok {
		it.UnitPrice = &up
	}

	total, ok := r.num(obj, itemTotalKeys, field("total_price"))
	if !ok && it.UnitPrice != nil {
		total = it.UnitPrice.Mul(qty).Round(2)
	}
	it.TotalPrice = total
	return it
}

func (r *reader) str(m map[string]any, keys []string) string {
	v, ok := first(m, keys)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// required reads a numeric field the comparison depends on. An absent field is
// recorded as missing; an unreadable one is already recorded by num.
func (r *reader) required(m map[string]any, keys []string, field string) decimal.Decimal {
	d, ok := r.num(m, keys, field)
	if !ok && !r.has(field) {
		r.issue(field, "", bill.IssueMissing)
	}
	return d
}

func (r *reader) issue(field, raw string, kind bill.IssueKind) {
	r.issues = append(r.issues, bill.ParseIssue{Field: field, Raw: raw, Kind: kind})
}

// has reports whether an issue is already recorded for field.
func (r *reader) has(field string) bool {
	for _, is := range r.issues {
		if is.Field == field {
			return true
		}
	}
	return false
}

// num reads a numeric field. The boolean is false when the field is absent or
// unreadable; unreadable values are also recorded as parse issues.
func (r *reader) num(m map[string]any, keys []string, field string) (decimal.Decimal, bool) {
	v, ok := first(m, keys)
	if !ok {
		return decimal.Zero, false
	}
	d, present, err := parseDecimal(v)
	if err != nil {
		r.issue(field, fmt.Sprint(v), bill.IssueUnreadable)
		return decimal.Zero, false
	}
	return d, present
}

// first returns the value of the first alias present with a non-null value.
func first(m map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

var currencyReplacer = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", "INR", "", ",", "", " ", "")

// parseDecimal accepts JSON numbers and strings carrying currency marks or
// thousands separators. An empty string counts as absent.
func parseDecimal(v any) (decimal.Decimal, bool, error) {
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, false, err
		}
		return d, true, nil
	case float64:
		return decimal.NewFromFloat(val), true, nil
	case string:
		cleaned := currencyReplacer.Replace(strings.TrimSpace(val))
		if cleaned == "" {
			return decimal.Zero, false, nil
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero, false, err
		}
		return d, true, nil
	default:
		return decimal.Zero, false, fmt.Errorf("unsupported numeric value of type %T", v)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
