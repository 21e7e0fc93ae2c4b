package app

import (
	"context"
	"fmt"

	"hydration/internal/domain"
	"hydration/internal/observability"
)

const maxHistoryDays = 366

// SummaryService recomputes and serves per-day hydration summaries.
type SummaryService struct {
	intakes   domain.IntakeRepository
	profiles  domain.ProfileRepository
	summaries domain.SummaryRepository
	streaks   *StreakService
	tz        *TimezoneResolver
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(
	intakes domain.IntakeRepository,
	profiles domain.ProfileRepository,
	summaries domain.SummaryRepository,
	streaks *StreakService,
	tz *TimezoneResolver,
) *SummaryService {
	return &SummaryService{intakes: intakes, profiles: profiles, summaries: summaries, streaks: streaks, tz: tz}
}

// UpdateDailySummary recomputes the (userID, date) summary from the raw logs
// and upserts it. It returns (nil, nil) when the user has no profile, since
// no goal exists to compare against. Persistence errors are returned as-is.
func (s *SummaryService) UpdateDailySummary(ctx context.Context, userID int64, date string) (*domain.DailySummary, error) {
	sum, err := s.updateDailySummary(ctx, userID, date)
	switch {
	case err != nil:
		observability.RecordSummaryUpdate(observability.SummaryFailed, false)
	case sum == nil:
		observability.RecordSummaryUpdate(observability.SummarySkipped, false)
	default:
		observability.RecordSummaryUpdate(observability.SummaryUpdated, sum.GoalMet)
	}
	return sum, err
}

func (s *SummaryService) updateDailySummary(ctx context.Context, userID int64, date string) (*domain.DailySummary, error) {
	total, err := s.intakes.GetTotalIntakeForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetHydrationProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	goal := profile.EffectiveGoal()
	goalMet := total >= goal

	logs, err := s.intakes.GetIntakeLogsByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	streakDay := 0
	if goalMet {
		yesterday, err := domain.AddDays(date, -1)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
		}
		prev, err := s.streaks.StreakThrough(ctx, userID, yesterday)
		if err != nil {
			return nil, err
		}
		streakDay = prev + 1
	}

	sum := domain.DailySummary{
		UserID:      userID,
		Date:        date,
		TotalIntake: total,
		GoalAmount:  goal,
		GoalMet:     goalMet,
		StreakDay:   streakDay,
		LogCount:    len(logs),
	}
	if err := s.summaries.UpsertDailySummary(ctx, sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// RecomputeToday recomputes the summary for the user's current date.
func (s *SummaryService) RecomputeToday(ctx context.Context, userID int64) (*domain.DailySummary, string, error) {
	today, err := s.tz.Today(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	sum, err := s.UpdateDailySummary(ctx, userID, today)
	return sum, today, err
}

// ListRecent returns the stored summaries of the last days days, oldest first.
func (s *SummaryService) ListRecent(ctx context.Context, userID int64, days int) ([]domain.DailySummary, error) {
	if days <= 0 {
		days = 30
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	today, err := s.tz.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	start, err := domain.AddDays(today, -(days - 1))
	if err != nil {
		return nil, err
	}
	return s.summaries.GetDailySummariesByRange(ctx, userID, start, today)
}
