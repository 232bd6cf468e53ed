// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weightlog/internal/domain"

	"github.com/shopspring/decimal"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	samples  []domain.WeightSample
	profiles map[int64]domain.Profile
	users    []*domain.User
	sessions map[string]*domain.Session

	sampleIDCounter int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		profiles: make(map[int64]domain.Profile),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.SampleRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- SampleRepository ---

// AddSample adds a weight sample.
func (db *DB) AddSample(ctx context.Context, s domain.WeightSample) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sampleIDCounter++
	s.ID = db.sampleIDCounter
	s.Date = domain.Day(s.Date)
	db.samples = append(db.samples, s)
	return s.ID, nil
}

// UpdateSample changes the weight and note of a sample. Returns nil when no
// sample with that id belongs to the user.
func (db *DB) UpdateSample(ctx context.Context, userID, id int64, weight decimal.Decimal, note string) (*domain.WeightSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.samples {
		s := &db.samples[i]
		if s.ID == id && s.UserID == userID {
			s.Weight = weight
			s.Note = note
			out := *s
			return &out, nil
		}
	}
	return nil, nil
}

// DeleteLatestSample deletes the user's most recent sample.
func (db *DB) DeleteLatestSample(ctx context.Context, userID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := -1
	for i, s := range db.samples {
		if s.UserID != userID {
			continue
		}
		if lastIdx == -1 || sampleAfter(s, db.samples[lastIdx]) {
			lastIdx = i
		}
	}
	if lastIdx == -1 {
		return false, nil
	}
	db.samples = append(db.samples[:lastIdx], db.samples[lastIdx+1:]...)
	return true, nil
}

// SamplesInRange returns the user's samples between two days inclusive,
// ordered by date then recorded-at ascending.
func (db *DB) SamplesInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.WeightSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	startDay, endDay := domain.Day(start), domain.Day(end)
	var out []domain.WeightSample
	for _, s := range db.samples {
		if s.UserID != userID {
			continue
		}
		if s.Date.Before(startDay) || s.Date.After(endDay) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return sampleAfter(out[j], out[i])
	})
	return out, nil
}

// LatestSampleBefore returns the most recent sample from a day strictly
// before the given one.
func (db *DB) LatestSampleBefore(ctx context.Context, userID int64, day time.Time) (*domain.WeightSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cutoff := domain.Day(day)
	var latest *domain.WeightSample
	for i := range db.samples {
		s := &db.samples[i]
		if s.UserID != userID || !s.Date.Before(cutoff) {
			continue
		}
		if latest == nil || sampleAfter(*s, *latest) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

// ListRecentSamples returns the most recent samples up to limit, newest first.
func (db *DB) ListRecentSamples(ctx context.Context, userID int64, limit int) ([]domain.WeightSample, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.WeightSample
	for _, s := range db.samples {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return sampleAfter(out[i], out[j])
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sampleAfter reports whether a sorts after b by (date, recorded-at).
func sampleAfter(a, b domain.WeightSample) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.RecordedAt.After(b.RecordedAt)
}

// --- ProfileRepository ---

// GetProfile returns the user's profile, or nil when none exists.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// UpsertProfile inserts or updates the user's profile.
func (db *DB) UpsertProfile(ctx context.Context, p domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.profiles[p.UserID] = p
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user along with an empty profile.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	db.users = append(db.users, u)
	db.profiles[u.ID] = domain.Profile{UserID: u.ID, PreferredUnit: "kg"}
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
