package validator

import (
	"regexp"
	"strings"

	"gstaudit/internal/bill"
)

// RuleGSTINFormat is the rule key for the GSTIN shape check.
const RuleGSTINFormat = "format.gstin"

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// FormatValidators returns field format checks.
func FormatValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		{key: RuleGSTINFormat, name: "Format: GSTIN", fn: checkGSTIN},
	}
}

// checkGSTIN only notes a malformed GSTIN; an absent one is common on retail bills.
func checkGSTIN(d *bill.Draft) []bill.Warning {
	g := strings.ToUpper(strings.TrimSpace(d.GSTIN))
	if g == "" || gstinPattern.MatchString(g) {
		return nil
	}
	return []bill.Warning{infof(RuleGSTINFormat, penaltyNone,
		"GSTIN %q does not match the 15-character GSTIN format", d.GSTIN)}
}
