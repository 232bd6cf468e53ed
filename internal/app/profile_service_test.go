package app

import (
	"context"
	"errors"
	"testing"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

func TestProfileGet_NotFound(t *testing.T) {
	svc := NewProfileService(&mockProfileRepo{})
	_, err := svc.Get(context.Background(), 1)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetGoalWeight(t *testing.T) {
	var saved domain.Profile
	repo := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, PreferredUnit: "kg"}, nil
		},
		upsertFn: func(_ context.Context, p domain.Profile) error {
			saved = p
			return nil
		},
	}
	svc := NewProfileService(repo)

	goal := decimal.RequireFromString("68")
	profile, err := svc.SetGoalWeight(context.Background(), 1, &goal, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.GoalWeight == nil || !profile.GoalWeight.Equal(goal) {
		t.Fatalf("unexpected goal on returned profile: %v", profile.GoalWeight)
	}
	if saved.GoalWeight == nil || !saved.GoalWeight.Equal(goal) {
		t.Fatalf("unexpected goal persisted: %v", saved.GoalWeight)
	}
}

func TestSetGoalWeight_Clear(t *testing.T) {
	existing := decimal.RequireFromString("68")
	repo := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, GoalWeight: &existing, PreferredUnit: "kg"}, nil
		},
	}
	svc := NewProfileService(repo)

	profile, err := svc.SetGoalWeight(context.Background(), 1, nil, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.GoalWeight != nil {
		t.Fatalf("expected goal cleared, got %v", profile.GoalWeight)
	}
}

func TestSetGoalWeight_Invalid(t *testing.T) {
	repo := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, PreferredUnit: "kg"}, nil
		},
	}
	svc := NewProfileService(repo)

	zero := decimal.Zero
	if _, err := svc.SetGoalWeight(context.Background(), 1, &zero, "kg"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSetPreferredUnit(t *testing.T) {
	repo := &mockProfileRepo{
		getFn: func(context.Context, int64) (*domain.Profile, error) {
			return &domain.Profile{UserID: 1, PreferredUnit: "kg"}, nil
		},
	}
	svc := NewProfileService(repo)

	profile, err := svc.SetPreferredUnit(context.Background(), 1, "lb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.PreferredUnit != "lb" {
		t.Fatalf("expected lb, got %s", profile.PreferredUnit)
	}

	if _, err := svc.SetPreferredUnit(context.Background(), 1, "st"); err == nil {
		t.Fatal("expected validation error for unknown unit")
	}
}
