package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hydration/internal/domain"
	"hydration/internal/observability"
)

const (
	maxIntakeMl      = 5000
	maxBeverageLen   = 32
	maxFutureLogSkew = 5 * time.Minute

	defaultRecentLogs = 20
	maxRecentLogs     = 500
)

// IntakeInput is the payload for recording a drink.
type IntakeInput struct {
	AmountMl            int
	BeverageType        string
	HydrationPercentage *int
	LoggedAt            *time.Time
}

// IntakeService encapsulates intake logging use cases.
type IntakeService struct {
	repo domain.IntakeRepository
	tz   *TimezoneResolver
}

// NewIntakeService creates an IntakeService backed by the given repository.
func NewIntakeService(repo domain.IntakeRepository, tz *TimezoneResolver) *IntakeService {
	return &IntakeService{repo: repo, tz: tz}
}

// Record validates and stores an intake log. The log's date is the calendar
// date of LoggedAt in the user's timezone.
func (s *IntakeService) Record(ctx context.Context, userID int64, in IntakeInput) (*domain.IntakeLog, error) {
	if in.AmountMl <= 0 || in.AmountMl > maxIntakeMl {
		return nil, fmt.Errorf("%w: amount must be within [1, %d] ml", domain.ErrValidation, maxIntakeMl)
	}
	beverage := strings.ToLower(strings.TrimSpace(in.BeverageType))
	if beverage == "" {
		beverage = domain.DefaultBeverage
	}
	if len(beverage) > maxBeverageLen {
		return nil, fmt.Errorf("%w: beverageType too long", domain.ErrValidation)
	}
	pct := domain.BeverageHydration(beverage)
	if in.HydrationPercentage != nil {
		pct = *in.HydrationPercentage
	}
	if pct < 0 || pct > 100 {
		return nil, fmt.Errorf("%w: hydrationPercentage must be within [0, 100]", domain.ErrValidation)
	}

	now := s.tz.Now()
	loggedAt := now
	if in.LoggedAt != nil {
		loggedAt = *in.LoggedAt
	}
	if loggedAt.After(now.Add(maxFutureLogSkew)) {
		return nil, fmt.Errorf("%w: loggedAt is in the future", domain.ErrValidation)
	}

	loc, err := s.tz.Location(ctx, userID)
	if err != nil {
		return nil, err
	}

	log := domain.IntakeLog{
		UserID:              userID,
		AmountMl:            in.AmountMl,
		BeverageType:        beverage,
		HydrationPercentage: pct,
		LoggedAt:            loggedAt.UTC(),
		Date:                domain.DateInTimezone(loggedAt, loc),
	}
	id, err := s.repo.CreateIntakeLog(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id
	label := log.BeverageType
	if !domain.KnownBeverage(label) {
		label = "other"
	}
	observability.RecordIntake(label, log.AmountMl)
	return &log, nil
}

// ListRecent returns the most recent intake logs up to limit, clamped to
// [1, maxRecentLogs]. A non-positive limit selects the default page size.
func (s *IntakeService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.IntakeLog, error) {
	if limit <= 0 {
		limit = defaultRecentLogs
	}
	limit = min(limit, maxRecentLogs)
	return s.repo.ListRecentIntakeLogs(ctx, userID, limit)
}

// ListByDate returns the logs bucketed into a calendar date.
func (s *IntakeService) ListByDate(ctx context.Context, userID int64, date string) ([]domain.IntakeLog, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return s.repo.GetIntakeLogsByDate(ctx, userID, date)
}
