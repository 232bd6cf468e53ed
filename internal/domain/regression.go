package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RegressionWindowDays bounds the recent period used to fit the projection line.
const RegressionWindowDays = 30

// goalSlopeFloor is the minimum absolute slope (kg/day) considered a
// meaningful trend toward a goal.
const goalSlopeFloor = 0.001

// goalHorizonDays caps how far into the future an estimated goal date may lie.
const goalHorizonDays = 365

// RegressionModel is an ordinary least squares line fit over
// (whole days since the earliest sample, weight in kg).
type RegressionModel struct {
	Slope     float64 `json:"slope"`     // kg per day
	Intercept float64 `json:"intercept"` // kg
}

// FitLinear fits a least squares line to an ordered series. Returns false
// when fewer than two samples exist or all samples share one day, in which
// case no model is defined and callers must not project.
func FitLinear(samples []WeightSample) (RegressionModel, bool) {
	n := len(samples)
	if n < 2 {
		return RegressionModel{}, false
	}

	firstDay := samples[0].Date
	var sumX, sumY, sumXY, sumXX float64
	for _, s := range samples {
		x := float64(DaysBetween(firstDay, s.Date))
		y := s.Weight.InexactFloat64()
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	nf := float64(n)
	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return RegressionModel{}, false
	}
	slope := (nf*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / nf
	return RegressionModel{Slope: slope, Intercept: intercept}, true
}

// ProjectAt evaluates the fitted line at targetDate, where firstDate is the
// earliest sample of the fitting window. The result re-enters the decimal
// domain rounded to two places.
func (m RegressionModel) ProjectAt(firstDate, targetDate time.Time) decimal.Decimal {
	x := float64(DaysBetween(firstDate, targetDate))
	return decimal.NewFromFloat(m.Slope*x + m.Intercept).Round(2)
}

// GoalDate solves the fitted line for the day it reaches goal. Absent when
// the slope is too flat to call a trend, or when the crossing is not a future
// date within one year. A fractional crossing rounds up to the first whole
// day past the goal.
func (m RegressionModel) GoalDate(firstDate time.Time, goal decimal.Decimal) (time.Time, bool) {
	if math.Abs(m.Slope) <= goalSlopeFloor {
		return time.Time{}, false
	}
	x := (goal.InexactFloat64() - m.Intercept) / m.Slope
	if x <= 0 || x >= goalHorizonDays {
		return time.Time{}, false
	}
	return Day(firstDate).AddDate(0, 0, int(math.Ceil(x))), true
}
