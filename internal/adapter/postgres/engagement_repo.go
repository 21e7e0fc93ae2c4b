package postgres

import (
	"context"
	"database/sql"
	"time"

	"hydration/internal/domain"
)

// GetReminder returns the user's reminder or nil.
func (d *DB) GetReminder(ctx context.Context, userID int64) (*domain.Reminder, error) {
	var r domain.Reminder
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_id, interval_minutes, start_time, end_time, is_enabled, sound_id, updated_at FROM reminders WHERE user_id=$1;",
		userID,
	).Scan(&r.UserID, &r.IntervalMinutes, &r.StartTime, &r.EndTime, &r.IsEnabled, &r.SoundID, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertReminder creates or replaces the user's reminder.
func (d *DB) UpsertReminder(ctx context.Context, r domain.Reminder) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO reminders (user_id, interval_minutes, start_time, end_time, is_enabled, sound_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			interval_minutes = EXCLUDED.interval_minutes,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_enabled = EXCLUDED.is_enabled,
			sound_id = EXCLUDED.sound_id,
			updated_at = EXCLUDED.updated_at`,
		r.UserID, r.IntervalMinutes, r.StartTime, r.EndTime, r.IsEnabled, r.SoundID, r.UpdatedAt.UTC(),
	)
	return err
}

// UnlockAchievement inserts the unlock once and reports whether it was new.
func (d *DB) UnlockAchievement(ctx context.Context, userID int64, code string, at time.Time) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO user_achievements (user_id, code, unlocked_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, code) DO NOTHING;",
		userID, code, at.UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// ListUserAchievements returns the user's unlocks, oldest first.
func (d *DB) ListUserAchievements(ctx context.Context, userID int64) ([]domain.UserAchievement, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT user_id, code, unlocked_at FROM user_achievements WHERE user_id=$1 ORDER BY unlocked_at, code;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.UserAchievement
	for rows.Next() {
		var a domain.UserAchievement
		if err := rows.Scan(&a.UserID, &a.Code, &a.UnlockedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetSubscription returns the user's subscription or nil.
func (d *DB) GetSubscription(ctx context.Context, userID int64) (*domain.Subscription, error) {
	var s domain.Subscription
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_id, status, plan_type, current_period_start, current_period_end, cancel_at_period_end FROM subscriptions WHERE user_id=$1;",
		userID,
	).Scan(&s.UserID, &s.Status, &s.PlanType, &s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CancelAtPeriodEnd)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertSubscription creates or replaces the user's subscription.
func (d *DB) UpsertSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, status, plan_type, current_period_start, current_period_end, cancel_at_period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			plan_type = EXCLUDED.plan_type,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end`,
		s.UserID, s.Status, s.PlanType, s.CurrentPeriodStart.UTC(), s.CurrentPeriodEnd.UTC(), s.CancelAtPeriodEnd,
	)
	return err
}
