package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstaudit/internal/bill"
	"gstaudit/internal/domain"
)

var (
	mathTolerance     = decimal.NewFromInt(1)
	minorTolerance    = decimal.NewFromInt(5)
	roundOffTolerance = decimal.RequireFromString("0.10")
	rateTolerance     = decimal.RequireFromString("0.5")
	hundred           = decimal.NewFromInt(100)
)

// Confidence deductions per finding.
var (
	penaltyNone        = decimal.Zero
	penaltyMinor       = decimal.RequireFromString("0.05")
	penaltyStandard    = decimal.RequireFromString("0.10")
	penaltyGrandTotal  = decimal.RequireFromString("0.15")
	penaltyInterstate  = decimal.RequireFromString("0.40")
	penaltyUnrecovered = decimal.NewFromInt(1)
)

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func warn(key, msg string, penalty decimal.Decimal) bill.Warning {
	return bill.Warning{RuleKey: key, Severity: domain.SeverityWarning, Message: msg, Penalty: penalty}
}

func info(key, msg string, penalty decimal.Decimal) bill.Warning {
	return bill.Warning{RuleKey: key, Severity: domain.SeverityInfo, Message: msg, Penalty: penalty}
}

func warnf(key string, penalty decimal.Decimal, format string, args ...interface{}) bill.Warning {
	return warn(key, fmt.Sprintf(format, args...), penalty)
}

func infof(key string, penalty decimal.Decimal, format string, args ...interface{}) bill.Warning {
	return info(key, fmt.Sprintf(format, args...), penalty)
}
