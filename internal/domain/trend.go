package domain

import "github.com/shopspring/decimal"

// TrendClassification is a derived three-state reading of where a weight is
// heading relative to an earlier one. It is computed on demand and never
// stored, so historical records are not reinterpreted if the tolerance ever
// changes.
type TrendClassification string

const (
	TrendRising  TrendClassification = "rising"
	TrendFalling TrendClassification = "falling"
	TrendStable  TrendClassification = "stable"
)

// trendTolerance is the deadband for trend classification: differences of at
// most 0.1 kg in either direction read as stable. System constant, not
// user-configurable. The same deadband applies to pointwise and whole-range
// comparisons.
var trendTolerance = decimal.RequireFromString("0.1")

// ClassifyTrend compares a weight against the previous one. A nil previous
// (first sample ever) is stable.
func ClassifyTrend(current decimal.Decimal, previous *decimal.Decimal) TrendClassification {
	if previous == nil {
		return TrendStable
	}
	diff := current.Sub(*previous)
	switch {
	case diff.Abs().LessThanOrEqual(trendTolerance):
		return TrendStable
	case diff.IsPositive():
		return TrendRising
	default:
		return TrendFalling
	}
}
