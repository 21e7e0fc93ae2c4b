package postgres

import (
	"context"
	"database/sql"
	"time"

	"hydration/internal/domain"
)

const summaryColumns = "user_id, date, total_intake, goal_amount, goal_met, streak_day, log_count"

// GetDailySummary returns the (userID, date) summary or nil.
func (d *DB) GetDailySummary(ctx context.Context, userID int64, date string) (*domain.DailySummary, error) {
	var s domain.DailySummary
	err := d.sql.QueryRowContext(ctx,
		"SELECT "+summaryColumns+" FROM daily_summaries WHERE user_id=$1 AND date=$2;",
		userID, date,
	).Scan(&s.UserID, &s.Date, &s.TotalIntake, &s.GoalAmount, &s.GoalMet, &s.StreakDay, &s.LogCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertDailySummary writes the full row keyed by (user_id, date) in one statement.
func (d *DB) UpsertDailySummary(ctx context.Context, s domain.DailySummary) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO daily_summaries (user_id, date, total_intake, goal_amount, goal_met, streak_day, log_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, date) DO UPDATE SET
			total_intake = EXCLUDED.total_intake,
			goal_amount = EXCLUDED.goal_amount,
			goal_met = EXCLUDED.goal_met,
			streak_day = EXCLUDED.streak_day,
			log_count = EXCLUDED.log_count,
			updated_at = EXCLUDED.updated_at`,
		s.UserID, s.Date, s.TotalIntake, s.GoalAmount, s.GoalMet, s.StreakDay, s.LogCount, time.Now().UTC(),
	)
	return err
}

// GetDailySummariesByRange returns summaries with start <= date <= end, oldest first.
func (d *DB) GetDailySummariesByRange(ctx context.Context, userID int64, start, end string) ([]domain.DailySummary, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+summaryColumns+" FROM daily_summaries WHERE user_id=$1 AND date >= $2 AND date <= $3 ORDER BY date;",
		userID, start, end)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// ListGoalMetSummaries returns goal-met summaries on or before through, newest first.
func (d *DB) ListGoalMetSummaries(ctx context.Context, userID int64, through string, limit int) ([]domain.DailySummary, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+summaryColumns+" FROM daily_summaries WHERE user_id=$1 AND goal_met AND date <= $2 ORDER BY date DESC LIMIT $3;",
		userID, through, limit)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]domain.DailySummary, error) {
	defer rows.Close() //nolint:errcheck

	var out []domain.DailySummary
	for rows.Next() {
		var s domain.DailySummary
		if err := rows.Scan(&s.UserID, &s.Date, &s.TotalIntake, &s.GoalAmount, &s.GoalMet, &s.StreakDay, &s.LogCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
