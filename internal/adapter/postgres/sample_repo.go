package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

// AddSample inserts a new weight sample.
func (d *DB) AddSample(ctx context.Context, s domain.WeightSample) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_samples(user_id, date, recorded_at, weight_kg, note) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		s.UserID, s.Date, s.RecordedAt.UTC(), s.Weight, s.Note,
	).Scan(&id)
	return id, err
}

// UpdateSample changes the weight and note of a sample. Returns nil when no
// sample with that id belongs to the user.
func (d *DB) UpdateSample(ctx context.Context, userID, id int64, weight decimal.Decimal, note string) (*domain.WeightSample, error) {
	row := d.sql.QueryRowContext(ctx,
		"UPDATE weight_samples SET weight_kg=$1, note=$2 WHERE id=$3 AND user_id=$4 RETURNING id, user_id, date, recorded_at, weight_kg, note;",
		weight, note, id, userID,
	)
	return scanSample(row)
}

// DeleteLatestSample removes the user's most recent sample.
func (d *DB) DeleteLatestSample(ctx context.Context, userID int64) (bool, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT id FROM weight_samples WHERE user_id=$1 ORDER BY date DESC, recorded_at DESC LIMIT 1;",
		userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	_, err = d.sql.ExecContext(ctx, "DELETE FROM weight_samples WHERE id=$1;", id)
	return err == nil, err
}

// SamplesInRange returns the user's samples between two days inclusive,
// ordered by date then recorded-at ascending.
func (d *DB) SamplesInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.WeightSample, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, date, recorded_at, weight_kg, note FROM weight_samples WHERE user_id=$1 AND date >= $2 AND date <= $3 ORDER BY date, recorded_at;",
		userID, domain.Day(start), domain.Day(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightSample
	for rows.Next() {
		s, err := scanSampleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// LatestSampleBefore returns the most recent sample from a day strictly
// before the given one, or nil when none exists.
func (d *DB) LatestSampleBefore(ctx context.Context, userID int64, day time.Time) (*domain.WeightSample, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, date, recorded_at, weight_kg, note FROM weight_samples WHERE user_id=$1 AND date < $2 ORDER BY date DESC, recorded_at DESC LIMIT 1;",
		userID, domain.Day(day),
	)
	return scanSample(row)
}

// ListRecentSamples returns the most recent samples up to limit, newest first.
func (d *DB) ListRecentSamples(ctx context.Context, userID int64, limit int) ([]domain.WeightSample, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, date, recorded_at, weight_kg, note FROM weight_samples WHERE user_id=$1 ORDER BY date DESC, recorded_at DESC LIMIT $2;",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WeightSample, 0, limit)
	for rows.Next() {
		s, err := scanSampleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSample(row *sql.Row) (*domain.WeightSample, error) {
	var s domain.WeightSample
	err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.RecordedAt, &s.Weight, &s.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSampleRow(rows *sql.Rows) (*domain.WeightSample, error) {
	var s domain.WeightSample
	if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.RecordedAt, &s.Weight, &s.Note); err != nil {
		return nil, err
	}
	return &s, nil
}
