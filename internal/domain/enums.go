package domain

// WarningSeverity tags a validation warning as a rounding-level note or a real problem.
type WarningSeverity string

const (
	SeverityInfo    WarningSeverity = "info"
	SeverityWarning WarningSeverity = "warning"
)

// Icon returns the marker prefixed to rendered warning messages.
func (s WarningSeverity) Icon() string {
	if s == SeverityInfo {
		return "ℹ️"
	}
	return "⚠️"
}

// ConfidenceBand is the qualitative bucket a confidence score falls into.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "HIGH"
	BandMedium ConfidenceBand = "MEDIUM"
	BandLow    ConfidenceBand = "LOW"
)

// RateSource records which branch of the resolver produced an item's rate.
type RateSource string

const (
	RateSourceLookup  RateSource = "lookup"
	RateSourceKeyword RateSource = "keyword"
	RateSourceDefault RateSource = "default"
)

// ReferenceSource selects where the GST reference catalog is loaded from.
type ReferenceSource string

const (
	ReferenceSourcePostgres ReferenceSource = "postgres"
	ReferenceSourceXLSX     ReferenceSource = "xlsx"
	ReferenceSourceNone     ReferenceSource = "none"
)
