package app_test

import (
	"context"
	"testing"
	"time"

	"hydration/internal/adapter/memory"
	"hydration/internal/app"
	"hydration/internal/domain"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        *memory.DB
	now       time.Time
	tz        *app.TimezoneResolver
	profiles  *app.ProfileService
	intakes   *app.IntakeService
	streaks   *app.StreakService
	summaries *app.SummaryService
	analytics *app.AnalyticsService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{db: memory.New(), now: now}
	f.tz = app.NewTimezoneResolver(f.db, domain.DefaultTimezone).WithClock(func() time.Time { return f.now })
	f.profiles = app.NewProfileService(f.db)
	f.intakes = app.NewIntakeService(f.db, f.tz)
	f.streaks = app.NewStreakService(f.db, f.tz)
	f.summaries = app.NewSummaryService(f.db, f.db, f.db, f.streaks, f.tz)
	f.analytics = app.NewAnalyticsService(f.db, f.db, f.db, f.tz)
	return f
}

func (f *fixture) saveProfile(t *testing.T, userID int64, in app.ProfileInput) *domain.HydrationProfile {
	t.Helper()
	p, err := f.profiles.SaveProfile(context.Background(), userID, in)
	require.NoError(t, err)
	return p
}

func (f *fixture) drink(t *testing.T, userID int64, ml int, at time.Time) *domain.IntakeLog {
	t.Helper()
	l, err := f.intakes.Record(context.Background(), userID, app.IntakeInput{AmountMl: ml, LoggedAt: &at})
	require.NoError(t, err)
	return l
}
