package app

import (
	"context"
	"errors"
	"time"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrSampleNotFound indicates that the requested sample does not exist or
// belongs to another user.
var ErrSampleNotFound = errors.New("sample not found")

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.SampleRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.SampleRepository) *WeightService {
	return &WeightService{repo: repo}
}

// RecordedSample pairs a stored sample with its trend reading against the
// most recent sample from an earlier day. The classification is derived at
// record time and never persisted.
type RecordedSample struct {
	Sample domain.WeightSample        `json:"sample"`
	Trend  domain.TrendClassification `json:"trend"`
}

// Record validates and stores a new weight measurement, normalized to
// kilograms, then classifies it against the prior sample.
func (s *WeightService) Record(ctx context.Context, userID int64, value decimal.Decimal, unit, note string) (*RecordedSample, error) {
	if err := validateMeasurement(value, unit); err != nil {
		return nil, err
	}

	now := time.Now()
	sample := domain.WeightSample{
		UserID:     userID,
		Date:       domain.Day(now.In(time.Local)),
		RecordedAt: now,
		Weight:     domain.NormalizeWeight(value, unit),
		Note:       note,
	}

	id, err := s.repo.AddSample(ctx, sample)
	if err != nil {
		return nil, err
	}
	sample.ID = id

	trend, err := s.classify(ctx, sample)
	if err != nil {
		return nil, err
	}
	return &RecordedSample{Sample: sample, Trend: trend}, nil
}

// Update edits the weight and note of an existing sample and re-classifies
// it against the sample preceding its day.
func (s *WeightService) Update(ctx context.Context, userID, id int64, value decimal.Decimal, unit, note string) (*RecordedSample, error) {
	if err := validateMeasurement(value, unit); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateSample(ctx, userID, id, domain.NormalizeWeight(value, unit), note)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrSampleNotFound
	}

	trend, err := s.classify(ctx, *updated)
	if err != nil {
		return nil, err
	}
	return &RecordedSample{Sample: *updated, Trend: trend}, nil
}

// ListRecent returns the most recent samples up to limit, newest first.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightSample, error) {
	return s.repo.ListRecentSamples(ctx, userID, limit)
}

// UndoLast deletes the most recent sample.
func (s *WeightService) UndoLast(ctx context.Context, userID int64) (bool, error) {
	return s.repo.DeleteLatestSample(ctx, userID)
}

// classify reads the most recent sample strictly before the sample's day and
// compares against it. Ties within that earlier day break by recorded-at
// descending, which the repository ordering guarantees.
func (s *WeightService) classify(ctx context.Context, sample domain.WeightSample) (domain.TrendClassification, error) {
	prev, err := s.repo.LatestSampleBefore(ctx, sample.UserID, sample.Date)
	if err != nil {
		return "", err
	}
	if prev == nil {
		return domain.ClassifyTrend(sample.Weight, nil), nil
	}
	return domain.ClassifyTrend(sample.Weight, &prev.Weight), nil
}

func validateMeasurement(value decimal.Decimal, unit string) error {
	if !value.IsPositive() {
		return errors.New("value must be > 0")
	}
	if unit != "kg" && unit != "lb" {
		return errors.New("unit must be \"kg\" or \"lb\"")
	}
	return nil
}
