package domain

import "context"

// DailySummary is the per-user, per-date aggregate. It is always a full
// recomputation from the intake logs, never an incremental patch.
type DailySummary struct {
	UserID      int64  `json:"userId"`
	Date        string `json:"date"`
	TotalIntake int    `json:"totalIntake"`
	GoalAmount  int    `json:"goalAmount"`
	GoalMet     bool   `json:"goalMet"`
	StreakDay   int    `json:"streakDay"`
	LogCount    int    `json:"logCount"`
}

// SummaryRepository is the port for daily summary persistence.
type SummaryRepository interface {
	GetDailySummary(ctx context.Context, userID int64, date string) (*DailySummary, error)
	// UpsertDailySummary inserts or fully overwrites the row keyed by (UserID, Date).
	UpsertDailySummary(ctx context.Context, s DailySummary) error
	GetDailySummariesByRange(ctx context.Context, userID int64, start, end string) ([]DailySummary, error)
	// ListGoalMetSummaries returns at most limit goal-met summaries dated on or
	// before through, newest first.
	ListGoalMetSummaries(ctx context.Context, userID int64, through string, limit int) ([]DailySummary, error)
}
