package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Profile holds per-user settings the analytics read: the goal weight the
// user is working toward plus display preferences.
type Profile struct {
	UserID        int64            `json:"userId"`
	GoalWeight    *decimal.Decimal `json:"goalWeight"`
	HeightCm      *decimal.Decimal `json:"heightCm"`
	PreferredUnit string           `json:"preferredUnit"`
}

// ProfileRepository is the port for profile persistence. GetProfile returns
// nil without an error when no profile exists for the user.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, p Profile) error
}
