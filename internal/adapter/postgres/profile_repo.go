package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

// GetProfile returns the user's profile, or nil when none exists.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var (
		p      domain.Profile
		goal   decimal.NullDecimal
		height decimal.NullDecimal
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_id, goal_weight_kg, height_cm, preferred_unit FROM profiles WHERE user_id=$1;",
		userID,
	).Scan(&p.UserID, &goal, &height, &p.PreferredUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if goal.Valid {
		p.GoalWeight = &goal.Decimal
	}
	if height.Valid {
		p.HeightCm = &height.Decimal
	}
	return &p, nil
}

// UpsertProfile inserts or updates the user's profile.
func (d *DB) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles(user_id, goal_weight_kg, height_cm, preferred_unit) VALUES($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET goal_weight_kg=EXCLUDED.goal_weight_kg, height_cm=EXCLUDED.height_cm, preferred_unit=EXCLUDED.preferred_unit;`,
		p.UserID, nullDecimal(p.GoalWeight), nullDecimal(p.HeightCm), p.PreferredUnit,
	)
	return err
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
