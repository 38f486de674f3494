package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
	"gstaudit/internal/validator"
)

func TestRequired_VendorAndBillNumber(t *testing.T) {
	tests := []struct {
		name string
		key  string
		mut  func(d *bill.Draft)
		msg  string
	}{
		{"vendor_missing", validator.RuleVendorName, func(d *bill.Draft) { d.VendorName = "" }, "Store name not found"},
		{"vendor_blank", validator.RuleVendorName, func(d *bill.Draft) { d.VendorName = "   " }, "Store name not found"},
		{"bill_number_missing", validator.RuleBillNumber, func(d *bill.Draft) { d.BillNumber = "" }, "Bill number not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := findValidator(tt.key)
			require.NotNil(t, v)
			assert.Empty(t, v.Validate(validDraft()))

			d := validDraft()
			tt.mut(d)
			ws := v.Validate(d)
			require.Len(t, ws, 1)
			assert.Equal(t, tt.msg, ws[0].Message)
			assert.True(t, ws[0].Penalty.Equal(dec("0.05")))
		})
	}
}

func TestRequired_ParseIssues(t *testing.T) {
	v := findValidator(validator.RuleParseIssues)
	require.NotNil(t, v)

	d := validDraft()
	d.Issues = []bill.ParseIssue{
		{Field: "discount", Raw: "ten", Kind: bill.IssueUnreadable},
		{Field: "items[1].total_price", Raw: "N/A", Kind: bill.IssueUnreadable},
		{Field: "grand_total", Kind: bill.IssueMissing},
		{Field: "total_gst", Raw: "5.00", Kind: bill.IssueDerived},
		{Field: "items[0]", Raw: "Dosa 100", Kind: bill.IssueSkipped},
	}
	ws := v.Validate(d)
	require.Len(t, ws, 5)
	assert.Equal(t, `Could not read discount value "ten"; treated as 0`, ws[0].Message)
	assert.Equal(t, `Could not read items[1].total_price value "N/A"; treated as 0`, ws[1].Message)
	assert.Equal(t, "grand_total not found on bill; treated as 0", ws[2].Message)
	assert.Equal(t, "total_gst not found on bill; derived as ₹5.00 from the tax split", ws[3].Message)
	assert.Equal(t, domain.SeverityInfo, ws[3].Severity)
	assert.Equal(t, `Could not read items[0] entry "Dosa 100"; item skipped`, ws[4].Message)
	for _, w := range ws {
		assert.True(t, w.Penalty.Equal(dec("0.05")), w.Message)
	}
}
