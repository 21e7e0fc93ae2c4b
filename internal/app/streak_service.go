package app

import (
	"context"

	"hydration/internal/domain"
)

// StreakService counts consecutive goal-met days.
type StreakService struct {
	summaries domain.SummaryRepository
	tz        *TimezoneResolver
}

// NewStreakService creates a StreakService.
func NewStreakService(summaries domain.SummaryRepository, tz *TimezoneResolver) *StreakService {
	return &StreakService{summaries: summaries, tz: tz}
}

// GetStreakCount returns the number of consecutive goal-met days ending
// today in the user's timezone. A today that is not yet met yields 0.
func (s *StreakService) GetStreakCount(ctx context.Context, userID int64) (int, error) {
	today, err := s.tz.Today(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.StreakThrough(ctx, userID, today)
}

// StreakThrough counts consecutive goal-met days ending at date, looking back
// at most domain.StreakLookbackDays goal-met summaries.
func (s *StreakService) StreakThrough(ctx context.Context, userID int64, date string) (int, error) {
	rows, err := s.summaries.ListGoalMetSummaries(ctx, userID, date, domain.StreakLookbackDays)
	if err != nil {
		return 0, err
	}
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.GoalMet {
			dates = append(dates, r.Date)
		}
	}
	return domain.CountStreak(dates, date), nil
}
