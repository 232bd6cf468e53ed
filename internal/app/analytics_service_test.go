package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSampleRepo struct {
	addFn    func(ctx context.Context, s domain.WeightSample) (int64, error)
	updateFn func(ctx context.Context, userID, id int64, weight decimal.Decimal, note string) (*domain.WeightSample, error)
	deleteFn func(ctx context.Context, userID int64) (bool, error)
	rangeFn  func(ctx context.Context, userID int64, start, end time.Time) ([]domain.WeightSample, error)
	beforeFn func(ctx context.Context, userID int64, day time.Time) (*domain.WeightSample, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]domain.WeightSample, error)
}

func (m *mockSampleRepo) AddSample(ctx context.Context, s domain.WeightSample) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, s)
	}
	return 1, nil
}

func (m *mockSampleRepo) UpdateSample(ctx context.Context, userID, id int64, weight decimal.Decimal, note string) (*domain.WeightSample, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, weight, note)
	}
	return nil, nil
}

func (m *mockSampleRepo) DeleteLatestSample(ctx context.Context, userID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return false, nil
}

func (m *mockSampleRepo) SamplesInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.WeightSample, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *mockSampleRepo) LatestSampleBefore(ctx context.Context, userID int64, day time.Time) (*domain.WeightSample, error) {
	if m.beforeFn != nil {
		return m.beforeFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockSampleRepo) ListRecentSamples(ctx context.Context, userID int64, limit int) ([]domain.WeightSample, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn    func(ctx context.Context, userID int64) (*domain.Profile, error)
	upsertFn func(ctx context.Context, p domain.Profile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, p)
	}
	return nil
}

var testDay0 = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

func testSample(dayOffset int, weight string) domain.WeightSample {
	d := testDay0.AddDate(0, 0, dayOffset)
	return domain.WeightSample{
		UserID:     1,
		Date:       d,
		RecordedAt: d.Add(8 * time.Hour),
		Weight:     decimal.RequireFromString(weight),
	}
}

func TestGetTrendAnalysis_InvalidRange(t *testing.T) {
	svc := NewAnalyticsService(&mockSampleRepo{}, &mockProfileRepo{})
	_, err := svc.GetTrendAnalysis(context.Background(), 1, testDay0, testDay0.AddDate(0, 0, -1))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetTrendAnalysis_EmptyRange(t *testing.T) {
	svc := NewAnalyticsService(&mockSampleRepo{}, &mockProfileRepo{})
	res, err := svc.GetTrendAnalysis(context.Background(), 1, testDay0, testDay0.AddDate(0, 0, 30))
	require.NoError(t, err)

	assert.Equal(t, domain.TrendStable, res.RangeTrend)
	assert.Nil(t, res.AverageDailyChange)
	assert.Nil(t, res.AverageWeeklyChange)
	assert.Empty(t, res.DataPoints)
	assert.Zero(t, res.Stats.RecordCount)
}

func TestGetTrendAnalysis_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	samples := &mockSampleRepo{
		rangeFn: func(context.Context, int64, time.Time, time.Time) ([]domain.WeightSample, error) {
			return nil, storeErr
		},
	}
	svc := NewAnalyticsService(samples, &mockProfileRepo{})
	_, err := svc.GetTrendAnalysis(context.Background(), 1, testDay0, testDay0.AddDate(0, 0, 7))
	require.ErrorIs(t, err, storeErr)
}

func TestGetTrendAnalysis_FallingRange(t *testing.T) {
	series := []domain.WeightSample{
		testSample(0, "80"),
		testSample(5, "79.2"),
		testSample(10, "78"),
	}
	samples := &mockSampleRepo{
		rangeFn: func(_ context.Context, userID int64, start, end time.Time) ([]domain.WeightSample, error) {
			assert.EqualValues(t, 1, userID)
			return series, nil
		},
	}
	svc := NewAnalyticsService(samples, &mockProfileRepo{})

	res, err := svc.GetTrendAnalysis(context.Background(), 1, testDay0, testDay0.AddDate(0, 0, 10))
	require.NoError(t, err)

	assert.Equal(t, domain.TrendFalling, res.RangeTrend)
	require.NotNil(t, res.AverageDailyChange)
	assert.Equal(t, "-0.2", res.AverageDailyChange.String())
	require.NotNil(t, res.AverageWeeklyChange)
	assert.Equal(t, "-1.4", res.AverageWeeklyChange.String())

	require.Len(t, res.DataPoints, 3)
	assert.Equal(t, "2026-04-01", res.DataPoints[0].Date)
	assert.Equal(t, "2026-04-11", res.DataPoints[2].Date)
	assert.Equal(t, 3, res.Stats.RecordCount)
}

func TestGetProjection_NoProfile(t *testing.T) {
	svc := NewAnalyticsService(&mockSampleRepo{}, &mockProfileRepo{})
	_, err := svc.GetProjection(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProjection_ProfileErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	profiles := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return nil, storeErr
		},
	}
	svc := NewAnalyticsService(&mockSampleRepo{}, profiles)
	_, err := svc.GetProjection(context.Background(), 1)
	require.ErrorIs(t, err, storeErr)
}

func TestGetProjection_TooFewSamples(t *testing.T) {
	today := testDay0.AddDate(0, 0, 60)
	profiles := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, PreferredUnit: "kg"}, nil
		},
	}
	samples := &mockSampleRepo{
		rangeFn: func(_ context.Context, _ int64, start, end time.Time) ([]domain.WeightSample, error) {
			assert.Equal(t, today.AddDate(0, 0, -30), start)
			assert.Equal(t, today, end)
			return []domain.WeightSample{testSample(60, "70")}, nil
		},
	}
	svc := NewAnalyticsService(samples, profiles)
	svc.now = func() time.Time { return today.Add(10 * time.Hour) }

	proj, err := svc.GetProjection(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, proj.ProjectedWeight)
	assert.Nil(t, proj.EstimatedGoalDate)
	assert.False(t, proj.IsOnTrack)
	assert.Equal(t, today.AddDate(0, 0, 30).Format("2006-01-02"), proj.ProjectionDate)
}

func TestGetProjection_SteadyLossOnTrack(t *testing.T) {
	// 75 kg falling to 70 kg over the 30-day window, goal 68 kg: the trend
	// reaches the goal about 12 days past today, well within a year.
	today := testDay0.AddDate(0, 0, 30)
	goal := decimal.RequireFromString("68.0")

	profiles := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, GoalWeight: &goal, PreferredUnit: "kg"}, nil
		},
	}
	samples := &mockSampleRepo{
		rangeFn: func(context.Context, int64, time.Time, time.Time) ([]domain.WeightSample, error) {
			return []domain.WeightSample{
				testSample(0, "75.0"),
				testSample(10, "73.3"),
				testSample(20, "71.7"),
				testSample(30, "70.0"),
			}, nil
		},
	}
	svc := NewAnalyticsService(samples, profiles)
	svc.now = func() time.Time { return today.Add(10 * time.Hour) }

	proj, err := svc.GetProjection(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, proj.ProjectedWeight)
	assert.InDelta(t, 65.03, proj.ProjectedWeight.InexactFloat64(), 0.05)
	assert.True(t, proj.IsOnTrack)
	require.NotNil(t, proj.EstimatedGoalDate)
	assert.Equal(t, testDay0.AddDate(0, 0, 43).Format("2006-01-02"), *proj.EstimatedGoalDate)
	require.NotNil(t, proj.GoalWeight)
	assert.True(t, proj.GoalWeight.Equal(goal))
}

func TestGetProjection_NoGoalConfigured(t *testing.T) {
	today := testDay0.AddDate(0, 0, 30)
	profiles := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, PreferredUnit: "kg"}, nil
		},
	}
	samples := &mockSampleRepo{
		rangeFn: func(context.Context, int64, time.Time, time.Time) ([]domain.WeightSample, error) {
			return []domain.WeightSample{
				testSample(0, "75.0"),
				testSample(30, "70.0"),
			}, nil
		},
	}
	svc := NewAnalyticsService(samples, profiles)
	svc.now = func() time.Time { return today.Add(10 * time.Hour) }

	proj, err := svc.GetProjection(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, proj.ProjectedWeight)
	assert.False(t, proj.IsOnTrack)
	assert.Nil(t, proj.EstimatedGoalDate)
	assert.Nil(t, proj.GoalWeight)
}
