package app

import (
	"context"
	"errors"

	"hydration/internal/domain"
)

// ErrInvalidPeriod is returned for analytics periods other than 7d, 30d and 90d.
var ErrInvalidPeriod = errors.New("period must be one of 7d, 30d, 90d")

// AnalyticsService produces period analytics from summaries and raw logs.
// Nothing is cached: every call reflects the logs present at query time.
type AnalyticsService struct {
	intakes   domain.IntakeRepository
	profiles  domain.ProfileRepository
	summaries domain.SummaryRepository
	tz        *TimezoneResolver
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(intakes domain.IntakeRepository, profiles domain.ProfileRepository, summaries domain.SummaryRepository, tz *TimezoneResolver) *AnalyticsService {
	return &AnalyticsService{intakes: intakes, profiles: profiles, summaries: summaries, tz: tz}
}

// GetAdvancedAnalytics returns the daily series, weekly and monthly rollups
// and insights for the period ending today in the user's timezone.
func (s *AnalyticsService) GetAdvancedAnalytics(ctx context.Context, userID int64, period Period) (*AdvancedAnalytics, error) {
	n := period.Days()
	if n == 0 {
		return nil, ErrInvalidPeriod
	}

	loc, err := s.tz.Location(ctx, userID)
	if err != nil {
		return nil, err
	}
	end := domain.CurrentDateInTimezone(s.tz.Now, loc)
	start, err := domain.AddDays(end, -(n - 1))
	if err != nil {
		return nil, err
	}
	dates, err := domain.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	fallbackGoal := 0
	profile, err := s.profiles.GetHydrationProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		fallbackGoal = profile.EffectiveGoal()
	}

	summaries, err := s.summaries.GetDailySummariesByRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	logs, err := s.intakes.GetIntakeLogsByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	out := buildAnalytics(period, dates, summaries, logs, fallbackGoal, loc)
	return &out, nil
}
