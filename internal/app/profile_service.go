package app

import (
	"context"
	"errors"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

// ProfileService manages per-user settings: goal weight, height and the
// preferred display unit.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// SetGoalWeight sets or clears (nil) the goal weight. The value is entered in
// the given unit and stored in kilograms.
func (s *ProfileService) SetGoalWeight(ctx context.Context, userID int64, goal *decimal.Decimal, unit string) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if goal == nil {
		profile.GoalWeight = nil
	} else {
		if !goal.IsPositive() {
			return nil, errors.New("goal weight must be > 0")
		}
		normalized := domain.NormalizeWeight(*goal, unit)
		profile.GoalWeight = &normalized
	}

	if err := s.repo.UpsertProfile(ctx, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetPreferredUnit changes which unit weights are displayed in.
func (s *ProfileService) SetPreferredUnit(ctx context.Context, userID int64, unit string) (*domain.Profile, error) {
	if unit != "kg" && unit != "lb" {
		return nil, errors.New("unit must be \"kg\" or \"lb\"")
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.PreferredUnit = unit
	if err := s.repo.UpsertProfile(ctx, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}
