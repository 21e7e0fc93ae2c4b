package app

import (
	"context"
	"time"

	"hydration/internal/domain"
)

// ReminderService manages the per-user reminder schedule.
type ReminderService struct {
	repo domain.ReminderRepository
	tz   *TimezoneResolver
}

// NewReminderService creates a ReminderService.
func NewReminderService(repo domain.ReminderRepository, tz *TimezoneResolver) *ReminderService {
	return &ReminderService{repo: repo, tz: tz}
}

// Get returns the saved reminder or the defaults.
func (s *ReminderService) Get(ctx context.Context, userID int64) (*domain.Reminder, error) {
	r, err := s.repo.GetReminder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		def := domain.DefaultReminder(userID)
		return &def, nil
	}
	return r, nil
}

// Save validates and stores the reminder.
func (s *ReminderService) Save(ctx context.Context, userID int64, r domain.Reminder) (*domain.Reminder, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.UserID = userID
	r.UpdatedAt = s.tz.Now().UTC()
	if err := s.repo.UpsertReminder(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Next returns the next reminder time; ok is false when reminders are off.
func (s *ReminderService) Next(ctx context.Context, userID int64) (next time.Time, ok bool, err error) {
	r, err := s.Get(ctx, userID)
	if err != nil {
		return time.Time{}, false, err
	}
	loc, err := s.tz.Location(ctx, userID)
	if err != nil {
		return time.Time{}, false, err
	}
	next, ok = r.NextFire(s.tz.Now(), loc)
	return next, ok, nil
}
