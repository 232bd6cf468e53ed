// Package domain contains the core business entities, value types,
// analytics functions and repository ports.
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WeightSample is one recorded weight observation. Weight is always stored
// normalized to kilograms, regardless of the unit it was entered in.
type WeightSample struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	Date       time.Time       `json:"date"`
	RecordedAt time.Time       `json:"recordedAt"`
	Weight     decimal.Decimal `json:"weightKg"`
	Note       string          `json:"note,omitempty"`
}

// SampleRepository is the port for weight sample persistence. Queries return
// samples ordered by date then recorded-at ascending unless stated otherwise.
type SampleRepository interface {
	AddSample(ctx context.Context, s WeightSample) (int64, error)
	UpdateSample(ctx context.Context, userID, id int64, weight decimal.Decimal, note string) (*WeightSample, error)
	DeleteLatestSample(ctx context.Context, userID int64) (bool, error)
	SamplesInRange(ctx context.Context, userID int64, start, end time.Time) ([]WeightSample, error)
	// LatestSampleBefore returns the most recent sample from a day strictly
	// before the given one, or nil when no such sample exists.
	LatestSampleBefore(ctx context.Context, userID int64, day time.Time) (*WeightSample, error)
	ListRecentSamples(ctx context.Context, userID int64, limit int) ([]WeightSample, error)
}

// Day truncates t to its calendar day (midnight, same location).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference between two calendar days,
// midnight to midnight. Never negative.
func DaysBetween(a, b time.Time) int {
	d := int(Day(b).Sub(Day(a)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
