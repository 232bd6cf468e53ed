package domain

import "github.com/shopspring/decimal"

// RangeStats summarizes the samples of one date range. All decimal fields are
// nil when RecordCount is zero. The two rate fields are additionally nil for
// stable ranges, single samples and same-day ranges.
type RangeStats struct {
	Current             *decimal.Decimal `json:"current"`
	Starting            *decimal.Decimal `json:"starting"`
	Average             *decimal.Decimal `json:"average"`
	Min                 *decimal.Decimal `json:"min"`
	Max                 *decimal.Decimal `json:"max"`
	TotalChange         *decimal.Decimal `json:"totalChange"`
	AverageDailyChange  *decimal.Decimal `json:"averageDailyChange"`
	AverageWeeklyChange *decimal.Decimal `json:"averageWeeklyChange"`
	RecordCount         int              `json:"recordCount"`
}

// OverallTrend classifies a whole range by comparing its first and last
// sample. An empty range is stable.
func OverallTrend(samples []WeightSample) TrendClassification {
	if len(samples) == 0 {
		return TrendStable
	}
	first := samples[0].Weight
	return ClassifyTrend(samples[len(samples)-1].Weight, &first)
}

// AggregateRange computes summary statistics over an ordered series.
func AggregateRange(samples []WeightSample) RangeStats {
	if len(samples) == 0 {
		return RangeStats{}
	}

	starting := samples[0].Weight
	current := samples[len(samples)-1].Weight
	minW, maxW := samples[0].Weight, samples[0].Weight
	sum := decimal.Zero
	for _, s := range samples {
		if s.Weight.LessThan(minW) {
			minW = s.Weight
		}
		if s.Weight.GreaterThan(maxW) {
			maxW = s.Weight
		}
		sum = sum.Add(s.Weight)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(samples))))
	totalChange := current.Sub(starting)

	stats := RangeStats{
		Current:     &current,
		Starting:    &starting,
		Average:     &average,
		Min:         &minW,
		Max:         &maxW,
		TotalChange: &totalChange,
		RecordCount: len(samples),
	}

	// Rates are only reported for a multi-day range that actually moved.
	if len(samples) >= 2 && OverallTrend(samples) != TrendStable {
		days := DaysBetween(samples[0].Date, samples[len(samples)-1].Date)
		if days > 0 {
			daily := totalChange.Div(decimal.NewFromInt(int64(days))).Round(3)
			weekly := daily.Mul(decimal.NewFromInt(7)).Round(3)
			stats.AverageDailyChange = &daily
			stats.AverageWeeklyChange = &weekly
		}
	}
	return stats
}
