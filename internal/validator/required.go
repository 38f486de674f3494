package validator

import (
	"strings"

	"gstaudit/internal/bill"
)

// Rule keys for completeness checks.
const (
	RuleVendorName  = "req.vendor_name"
	RuleBillNumber  = "req.bill_number"
	RuleParseIssues = "req.parse_issues"
)

// RequiredFieldValidators returns checks for fields the analysis cannot vouch for without.
func RequiredFieldValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		{
			key: RuleVendorName, name: "Required: Vendor Name",
			fn: requiredField(RuleVendorName, "Store name not found", func(d *bill.Draft) string { return d.VendorName }),
		},
		{
			key: RuleBillNumber, name: "Required: Bill Number",
			fn: requiredField(RuleBillNumber, "Bill number not found", func(d *bill.Draft) string { return d.BillNumber }),
		},
		{key: RuleParseIssues, name: "Required: Readable Amounts", fn: checkParseIssues},
	}
}

func requiredField(key, msg string, extract func(*bill.Draft) string) func(*bill.Draft) []bill.Warning {
	return func(d *bill.Draft) []bill.Warning {
		if strings.TrimSpace(extract(d)) != "" {
			return nil
		}
		return []bill.Warning{warn(key, msg, penaltyMinor)}
	}
}

func checkParseIssues(d *bill.Draft) []bill.Warning {
	if len(d.Issues) == 0 {
		return nil
	}
	out := make([]bill.Warning, 0, len(d.Issues))
	for _, is := range d.Issues {
		out = append(out, issueWarning(is))
	}
	return out
}

func issueWarning(is bill.ParseIssue) bill.Warning {
	switch is.Kind {
	case bill.IssueMissing:
		return warnf(RuleParseIssues, penaltyMinor, "%s not found on bill; treated as 0", is.Field)
	case bill.IssueDerived:
		return infof(RuleParseIssues, penaltyMinor, "%s not found on bill; derived as ₹%s from the tax split", is.Field, is.Raw)
	case bill.IssueSkipped:
		return warnf(RuleParseIssues, penaltyMinor, "Could not read %s entry %q; item skipped", is.Field, is.Raw)
	default:
		return warnf(RuleParseIssues, penaltyMinor, "Could not read %s value %q; treated as 0", is.Field, is.Raw)
	}
}

// skippedItems reports entries dropped from the item list, which explain an
// otherwise empty bill.
func skippedItems(d *bill.Draft) []bill.Warning {
	var out []bill.Warning
	for _, is := range d.Issues {
		if is.Kind == bill.IssueSkipped {
			out = append(out, issueWarning(is))
		}
	}
	return out
}
