// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"feedback/internal/domain"
)

// DB implements an in-memory database storage. A single mutex guards every
// collection, the users and the sessions.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	sessions map[string]*domain.Session

	userIDCounter int64

	bloodPressures *collection[domain.BloodPressure]
	points         *collection[domain.Points]
	weights        *collection[domain.Weight]
	preferences    *collection[domain.Preferences]
}

// New creates a new in-memory database.
func New() *DB {
	db := &DB{
		sessions: make(map[string]*domain.Session),
	}
	db.bloodPressures = newCollection(db,
		func(e *domain.BloodPressure) *int64 { return &e.ID },
		func(e *domain.BloodPressure) **domain.UserRef { return &e.User },
		func(e *domain.BloodPressure) domain.Date { return e.Date },
		map[string]compareFunc[domain.BloodPressure]{
			"date":      func(a, b *domain.BloodPressure) int { return compareDates(a.Date, b.Date) },
			"systolic":  func(a, b *domain.BloodPressure) int { return compareFloats(a.Systolic, b.Systolic) },
			"diastolic": func(a, b *domain.BloodPressure) int { return compareFloats(a.Diastolic, b.Diastolic) },
		})
	db.points = newCollection(db,
		func(e *domain.Points) *int64 { return &e.ID },
		func(e *domain.Points) **domain.UserRef { return &e.User },
		func(e *domain.Points) domain.Date { return e.Date },
		map[string]compareFunc[domain.Points]{
			"date":   func(a, b *domain.Points) int { return compareDates(a.Date, b.Date) },
			"points": func(a, b *domain.Points) int { return compareFloats(a.Points, b.Points) },
		})
	db.weights = newCollection(db,
		func(e *domain.Weight) *int64 { return &e.ID },
		func(e *domain.Weight) **domain.UserRef { return &e.User },
		func(e *domain.Weight) domain.Date { return e.Date },
		map[string]compareFunc[domain.Weight]{
			"date":   func(a, b *domain.Weight) int { return compareDates(a.Date, b.Date) },
			"weight": func(a, b *domain.Weight) int { return compareFloats(a.Weight, b.Weight) },
		})
	db.preferences = newCollection(db,
		func(e *domain.Preferences) *int64 { return &e.ID },
		func(e *domain.Preferences) **domain.UserRef { return &e.User },
		nil,
		map[string]compareFunc[domain.Preferences]{
			"weeklyGoal":  func(a, b *domain.Preferences) int { return compareInts(a.WeeklyGoal, b.WeeklyGoal) },
			"weightUnits": func(a, b *domain.Preferences) int { return compareStrings(a.WeightUnits, b.WeightUnits) },
		})
	return db
}

// Ensure interfaces are met.
var _ domain.BloodPressureRepository = (*collection[domain.BloodPressure])(nil)
var _ domain.PointsRepository = (*collection[domain.Points])(nil)
var _ domain.WeightRepository = (*collection[domain.Weight])(nil)
var _ domain.PreferencesRepository = (*collection[domain.Preferences])(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// BloodPressures returns the blood pressure repository.
func (db *DB) BloodPressures() domain.BloodPressureRepository { return db.bloodPressures }

// Points returns the points repository.
func (db *DB) Points() domain.PointsRepository { return db.points }

// Weights returns the weight repository.
func (db *DB) Weights() domain.WeightRepository { return db.weights }

// Preferences returns the preferences repository.
func (db *DB) Preferences() domain.PreferencesRepository { return db.preferences }

// loginOf resolves a user id to its login. Callers hold db.mu.
func (db *DB) loginOf(id int64) string {
	for _, u := range db.users {
		if u.ID == id {
			return u.Login
		}
	}
	return ""
}

// --- UserRepository ---

// GetByLogin retrieves a user by login.
func (db *DB) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Login == login {
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

// Create creates a new user.
func (db *DB) Create(ctx context.Context, login, passwordHash string, authorities []string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Login == login {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Login:        login,
		PasswordHash: passwordHash,
		Authorities:  append([]string(nil), authorities...),
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
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
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expired sessions read as absent.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		cp := *s
		return &cp, nil
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
