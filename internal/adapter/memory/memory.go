// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"hydration/internal/domain"
)

type summaryKey struct {
	userID int64
	date   string
}

type achievementKey struct {
	userID int64
	code   string
}

// DB implements an in-memory database storage.
type DB struct {
	mu            sync.Mutex
	users         []*domain.User
	sessions      map[string]*domain.Session
	profiles      map[int64]domain.HydrationProfile
	intakes       []domain.IntakeLog
	summaries     map[summaryKey]domain.DailySummary
	reminders     map[int64]domain.Reminder
	achievements  map[achievementKey]time.Time
	subscriptions map[int64]domain.Subscription

	userIDCounter   int64
	intakeIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions:      make(map[string]*domain.Session),
		profiles:      make(map[int64]domain.HydrationProfile),
		summaries:     make(map[summaryKey]domain.DailySummary),
		reminders:     make(map[int64]domain.Reminder),
		achievements:  make(map[achievementKey]time.Time),
		subscriptions: make(map[int64]domain.Subscription),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.IntakeRepository = (*DB)(nil)
var _ domain.SummaryRepository = (*DB)(nil)
var _ domain.ReminderRepository = (*DB)(nil)
var _ domain.AchievementRepository = (*DB)(nil)
var _ domain.SubscriptionRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
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
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// Delete removes the user and everything the user owns.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, u := range db.users {
		if u.ID == id {
			db.users = append(db.users[:i], db.users[i+1:]...)
			break
		}
	}
	for k, s := range db.sessions {
		if s.UserID == id {
			delete(db.sessions, k)
		}
	}
	delete(db.profiles, id)
	delete(db.reminders, id)
	delete(db.subscriptions, id)
	kept := db.intakes[:0]
	for _, l := range db.intakes {
		if l.UserID != id {
			kept = append(kept, l)
		}
	}
	db.intakes = kept
	for k := range db.summaries {
		if k.userID == id {
			delete(db.summaries, k)
		}
	}
	for k := range db.achievements {
		if k.userID == id {
			delete(db.achievements, k)
		}
	}
	return nil
}

// --- ProfileRepository ---

// GetHydrationProfile returns the user's profile or nil.
func (db *DB) GetHydrationProfile(ctx context.Context, userID int64) (*domain.HydrationProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	if p.CustomGoal != nil {
		g := *p.CustomGoal
		p.CustomGoal = &g
	}
	return &p, nil
}

// UpsertHydrationProfile creates or replaces the user's profile.
func (db *DB) UpsertHydrationProfile(ctx context.Context, p domain.HydrationProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p.CustomGoal != nil {
		g := *p.CustomGoal
		p.CustomGoal = &g
	}
	db.profiles[p.UserID] = p
	return nil
}

// --- IntakeRepository ---

// CreateIntakeLog appends an intake log.
func (db *DB) CreateIntakeLog(ctx context.Context, log domain.IntakeLog) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.intakeIDCounter++
	log.ID = db.intakeIDCounter
	log.LoggedAt = log.LoggedAt.UTC()
	db.intakes = append(db.intakes, log)
	return log.ID, nil
}

func (db *DB) intakesWhere(keep func(domain.IntakeLog) bool) []domain.IntakeLog {
	result := []domain.IntakeLog{}
	for _, l := range db.intakes {
		if keep(l) {
			result = append(result, l)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LoggedAt.Before(result[j].LoggedAt)
	})
	return result
}

// GetIntakeLogsByDate returns the user's logs for a calendar date.
func (db *DB) GetIntakeLogsByDate(ctx context.Context, userID int64, date string) ([]domain.IntakeLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.intakesWhere(func(l domain.IntakeLog) bool {
		return l.UserID == userID && l.Date == date
	}), nil
}

// GetIntakeLogsByDateRange returns the user's logs with start <= date <= end.
func (db *DB) GetIntakeLogsByDateRange(ctx context.Context, userID int64, start, end string) ([]domain.IntakeLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.intakesWhere(func(l domain.IntakeLog) bool {
		return l.UserID == userID && l.Date >= start && l.Date <= end
	}), nil
}

// GetTotalIntakeForDate sums the raw amounts logged on a calendar date.
func (db *DB) GetTotalIntakeForDate(ctx context.Context, userID int64, date string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	total := 0
	for _, l := range db.intakes {
		if l.UserID == userID && l.Date == date {
			total += l.AmountMl
		}
	}
	return total, nil
}

// ListRecentIntakeLogs lists the most recent logs, newest first.
func (db *DB) ListRecentIntakeLogs(ctx context.Context, userID int64, limit int) ([]domain.IntakeLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.intakesWhere(func(l domain.IntakeLog) bool { return l.UserID == userID })
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LoggedAt.After(result[j].LoggedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- SummaryRepository ---

// GetDailySummary returns the summary for (userID, date) or nil.
func (db *DB) GetDailySummary(ctx context.Context, userID int64, date string) (*domain.DailySummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.summaries[summaryKey{userID, date}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// UpsertDailySummary inserts or overwrites the (userID, date) row.
func (db *DB) UpsertDailySummary(ctx context.Context, s domain.DailySummary) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.summaries[summaryKey{s.UserID, s.Date}] = s
	return nil
}

// GetDailySummariesByRange returns summaries with start <= date <= end, oldest first.
func (db *DB) GetDailySummariesByRange(ctx context.Context, userID int64, start, end string) ([]domain.DailySummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.DailySummary{}
	for k, s := range db.summaries {
		if k.userID == userID && k.date >= start && k.date <= end {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// ListGoalMetSummaries returns goal-met summaries dated on or before through, newest first.
func (db *DB) ListGoalMetSummaries(ctx context.Context, userID int64, through string, limit int) ([]domain.DailySummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.DailySummary{}
	for k, s := range db.summaries {
		if k.userID == userID && s.GoalMet && k.date <= through {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- ReminderRepository ---

// GetReminder returns the saved reminder or nil.
func (db *DB) GetReminder(ctx context.Context, userID int64) (*domain.Reminder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.reminders[userID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// UpsertReminder stores the user's reminder.
func (db *DB) UpsertReminder(ctx context.Context, r domain.Reminder) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.reminders[r.UserID] = r
	return nil
}

// --- AchievementRepository ---

// UnlockAchievement records the unlock unless it already exists.
func (db *DB) UnlockAchievement(ctx context.Context, userID int64, code string, at time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	k := achievementKey{userID, code}
	if _, ok := db.achievements[k]; ok {
		return false, nil
	}
	db.achievements[k] = at.UTC()
	return true, nil
}

// ListUserAchievements returns the user's unlocks, oldest first.
func (db *DB) ListUserAchievements(ctx context.Context, userID int64) ([]domain.UserAchievement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.UserAchievement{}
	for k, at := range db.achievements {
		if k.userID == userID {
			result = append(result, domain.UserAchievement{UserID: userID, Code: k.code, UnlockedAt: at})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UnlockedAt.Equal(result[j].UnlockedAt) {
			return result[i].UnlockedAt.Before(result[j].UnlockedAt)
		}
		return result[i].Code < result[j].Code
	})
	return result, nil
}

// --- SubscriptionRepository ---

// GetSubscription returns the user's subscription or nil.
func (db *DB) GetSubscription(ctx context.Context, userID int64) (*domain.Subscription, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.subscriptions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// UpsertSubscription stores the user's subscription.
func (db *DB) UpsertSubscription(ctx context.Context, s domain.Subscription) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.subscriptions[s.UserID] = s
	return nil
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

// GetByToken retrieves a session by token.
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
