package app

import (
	"context"
	"errors"
	"time"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange indicates that the requested date range ends before it starts.
var ErrInvalidRange = errors.New("end date is before start date")

// AnalyticsService derives trends and projections from stored weight samples.
// Every operation is a pure read: samples are fetched once per call and all
// results are computed fresh from that snapshot.
type AnalyticsService struct {
	samples  domain.SampleRepository
	profiles domain.ProfileRepository
	now      func() time.Time
}

// NewAnalyticsService creates an AnalyticsService backed by the given
// repositories.
func NewAnalyticsService(samples domain.SampleRepository, profiles domain.ProfileRepository) *AnalyticsService {
	return &AnalyticsService{samples: samples, profiles: profiles, now: time.Now}
}

// DataPoint is one (date, weight) pair for charting.
type DataPoint struct {
	Date   string          `json:"date"`
	Weight decimal.Decimal `json:"weight"`
}

// TrendAnalysisResult is the outcome of analyzing one date range.
type TrendAnalysisResult struct {
	RangeTrend          domain.TrendClassification `json:"rangeTrend"`
	Stats               domain.RangeStats          `json:"stats"`
	AverageDailyChange  *decimal.Decimal           `json:"averageDailyChange"`
	AverageWeeklyChange *decimal.Decimal           `json:"averageWeeklyChange"`
	DataPoints          []DataPoint                `json:"dataPoints"`
}

// GetTrendAnalysis summarizes the user's samples between start and end. An
// empty range is not an error: it yields a stable trend, no rates and no data
// points. Store failures propagate unchanged.
func (s *AnalyticsService) GetTrendAnalysis(ctx context.Context, userID int64, start, end time.Time) (*TrendAnalysisResult, error) {
	if domain.Day(end).Before(domain.Day(start)) {
		return nil, ErrInvalidRange
	}

	series, err := s.samples.SamplesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	stats := domain.AggregateRange(series)
	points := make([]DataPoint, 0, len(series))
	for _, sm := range series {
		points = append(points, DataPoint{
			Date:   sm.Date.Format("2006-01-02"),
			Weight: sm.Weight,
		})
	}

	return &TrendAnalysisResult{
		RangeTrend:          domain.OverallTrend(series),
		Stats:               stats,
		AverageDailyChange:  stats.AverageDailyChange,
		AverageWeeklyChange: stats.AverageWeeklyChange,
		DataPoints:          points,
	}, nil
}

// Projection is the forward look produced by GetProjection.
type Projection struct {
	ProjectionDate    string           `json:"projectionDate"`
	ProjectedWeight   *decimal.Decimal `json:"projectedWeight"`
	GoalWeight        *decimal.Decimal `json:"goalWeight"`
	EstimatedGoalDate *string          `json:"estimatedGoalDate"`
	IsOnTrack         bool             `json:"isOnTrack"`
}

// GetProjection fits a line to the user's last 30 days of samples, projects
// the weight 30 days out and, when a goal weight is configured, estimates the
// day the trend reaches it. Too little data is not an error: the projection
// comes back with no projected weight and IsOnTrack false.
func (s *AnalyticsService) GetProjection(ctx context.Context, userID int64) (*Projection, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	today := domain.Day(s.now())
	projectionDate := today.AddDate(0, 0, domain.RegressionWindowDays)
	windowStart := today.AddDate(0, 0, -domain.RegressionWindowDays)

	series, err := s.samples.SamplesInRange(ctx, userID, windowStart, today)
	if err != nil {
		return nil, err
	}

	proj := &Projection{
		ProjectionDate: projectionDate.Format("2006-01-02"),
		GoalWeight:     profile.GoalWeight,
	}

	model, ok := domain.FitLinear(series)
	if !ok {
		return proj, nil
	}

	firstDate := series[0].Date
	projected := model.ProjectAt(firstDate, projectionDate)
	proj.ProjectedWeight = &projected

	if profile.GoalWeight != nil {
		if goalDate, ok := model.GoalDate(firstDate, *profile.GoalWeight); ok {
			gd := goalDate.Format("2006-01-02")
			proj.EstimatedGoalDate = &gd
			proj.IsOnTrack = true
		}
	}
	return proj, nil
}
