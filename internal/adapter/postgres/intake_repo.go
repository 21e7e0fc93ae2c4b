package postgres

import (
	"context"
	"database/sql"

	"hydration/internal/domain"
)

const intakeColumns = "id, user_id, amount_ml, beverage_type, hydration_percentage, logged_at, date"

// CreateIntakeLog inserts a new intake log.
func (d *DB) CreateIntakeLog(ctx context.Context, log domain.IntakeLog) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO intake_logs(user_id, amount_ml, beverage_type, hydration_percentage, logged_at, date) VALUES($1, $2, $3, $4, $5, $6) RETURNING id;",
		log.UserID, log.AmountMl, log.BeverageType, log.HydrationPercentage, log.LoggedAt.UTC(), log.Date,
	).Scan(&id)
	return id, err
}

// GetIntakeLogsByDate returns the user's logs bucketed into date, ordered by logged_at.
func (d *DB) GetIntakeLogsByDate(ctx context.Context, userID int64, date string) ([]domain.IntakeLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+intakeColumns+" FROM intake_logs WHERE user_id=$1 AND date=$2 ORDER BY logged_at, id;",
		userID, date)
	if err != nil {
		return nil, err
	}
	return scanIntakeLogs(rows, 0)
}

// GetIntakeLogsByDateRange returns logs with start <= date <= end, ordered by logged_at.
func (d *DB) GetIntakeLogsByDateRange(ctx context.Context, userID int64, start, end string) ([]domain.IntakeLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+intakeColumns+" FROM intake_logs WHERE user_id=$1 AND date >= $2 AND date <= $3 ORDER BY logged_at, id;",
		userID, start, end)
	if err != nil {
		return nil, err
	}
	return scanIntakeLogs(rows, 0)
}

// GetTotalIntakeForDate sums the raw amounts logged on date.
func (d *DB) GetTotalIntakeForDate(ctx context.Context, userID int64, date string) (int, error) {
	var total int
	err := d.sql.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_ml), 0) FROM intake_logs WHERE user_id=$1 AND date=$2;",
		userID, date,
	).Scan(&total)
	return total, err
}

// ListRecentIntakeLogs returns the most recent logs up to limit, newest first.
func (d *DB) ListRecentIntakeLogs(ctx context.Context, userID int64, limit int) ([]domain.IntakeLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+intakeColumns+" FROM intake_logs WHERE user_id=$1 ORDER BY logged_at DESC, id DESC LIMIT $2;",
		userID, limit)
	if err != nil {
		return nil, err
	}
	return scanIntakeLogs(rows, limit)
}

// maxScanPrealloc caps the capacity hint taken from a caller-supplied limit.
const maxScanPrealloc = 64

func scanIntakeLogs(rows *sql.Rows, capacity int) ([]domain.IntakeLog, error) {
	defer rows.Close() //nolint:errcheck

	out := make([]domain.IntakeLog, 0, min(max(capacity, 0), maxScanPrealloc))
	for rows.Next() {
		var l domain.IntakeLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.AmountMl, &l.BeverageType, &l.HydrationPercentage, &l.LoggedAt, &l.Date); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
