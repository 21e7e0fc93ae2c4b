package domain

import (
	"context"
	"fmt"
	"time"
)

const (
	MinReminderInterval = 15
	MaxReminderInterval = 480
	clockLayout         = "15:04"
)

// Reminder configures periodic drink reminders within a local time window.
type Reminder struct {
	UserID          int64     `json:"userId"`
	IntervalMinutes int       `json:"intervalMinutes"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	IsEnabled       bool      `json:"isEnabled"`
	SoundID         string    `json:"soundId"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultReminder is returned for users that never saved one.
func DefaultReminder(userID int64) Reminder {
	return Reminder{
		UserID:          userID,
		IntervalMinutes: 60,
		StartTime:       "08:00",
		EndTime:         "22:00",
		IsEnabled:       false,
		SoundID:         "default",
	}
}

// Validate checks the interval bounds and the HH:mm window.
func (r Reminder) Validate() error {
	if r.IntervalMinutes < MinReminderInterval || r.IntervalMinutes > MaxReminderInterval {
		return fmt.Errorf("%w: intervalMinutes must be within [%d, %d]", ErrValidation, MinReminderInterval, MaxReminderInterval)
	}
	start, err := time.Parse(clockLayout, r.StartTime)
	if err != nil {
		return fmt.Errorf("%w: startTime must be HH:mm", ErrValidation)
	}
	end, err := time.Parse(clockLayout, r.EndTime)
	if err != nil {
		return fmt.Errorf("%w: endTime must be HH:mm", ErrValidation)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrValidation)
	}
	return nil
}

// NextFire returns the first reminder instant strictly after now, walking the
// local window of today and then tomorrow. ok is false for disabled or
// invalid reminders.
func (r Reminder) NextFire(now time.Time, loc *time.Location) (time.Time, bool) {
	if !r.IsEnabled || r.Validate() != nil {
		return time.Time{}, false
	}
	start, _ := time.Parse(clockLayout, r.StartTime)
	end, _ := time.Parse(clockLayout, r.EndTime)
	local := now.In(loc)
	step := time.Duration(r.IntervalMinutes) * time.Minute

	for day := 0; day < 2; day++ {
		y, m, d := local.AddDate(0, 0, day).Date()
		windowStart := time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, loc)
		windowEnd := time.Date(y, m, d, end.Hour(), end.Minute(), 0, 0, loc)
		for t := windowStart; !t.After(windowEnd); t = t.Add(step) {
			if t.After(now) {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ReminderRepository is the port for reminder persistence.
type ReminderRepository interface {
	GetReminder(ctx context.Context, userID int64) (*Reminder, error)
	UpsertReminder(ctx context.Context, r Reminder) error
}
