package app_test

import (
	"context"
	"testing"
	"time"

	"hydration/internal/app"
	"hydration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_GetAdvancedAnalytics(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	f.saveProfile(t, 1, app.ProfileInput{Weight: 60, Gender: domain.GenderFemale, ActivityLevel: domain.ActivitySedentary})
	f.drink(t, 1, 2100, now.Add(-3*time.Hour))
	f.drink(t, 1, 700, now.Add(-27*time.Hour))
	_, err := f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)

	a, err := f.analytics.GetAdvancedAnalytics(ctx, 1, app.Period7d)
	require.NoError(t, err)

	require.Len(t, a.Daily, 7)
	assert.Equal(t, "2024-03-04", a.StartDate)
	assert.Equal(t, "2024-03-10", a.EndDate)

	last := a.Daily[6]
	assert.Equal(t, 2100, last.Intake)
	assert.Equal(t, 2100, last.Goal)
	assert.True(t, last.GoalMet)
	assert.Equal(t, 700, a.Daily[5].Intake)
	assert.Equal(t, 2100, a.Daily[5].Goal)

	assert.Equal(t, 1, a.Weekly.GoalsMetCount)
	assert.Equal(t, 14, a.Weekly.ConsistencyScore)
	assert.Equal(t, 400, a.Weekly.AverageDailyIntake)
}

func TestAnalyticsService_ReflectsNewLogsImmediately(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.saveProfile(t, 1, app.ProfileInput{Weight: 60, Gender: domain.GenderFemale, ActivityLevel: domain.ActivitySedentary})

	before, err := f.analytics.GetAdvancedAnalytics(ctx, 1, app.Period7d)
	require.NoError(t, err)
	assert.Equal(t, 0, before.Weekly.TotalIntake)

	f.drink(t, 1, 300, now)
	after, err := f.analytics.GetAdvancedAnalytics(ctx, 1, app.Period7d)
	require.NoError(t, err)
	assert.Equal(t, 300, after.Weekly.TotalIntake)
}

func TestAnalyticsService_InvalidPeriod(t *testing.T) {
	f := newFixture(t, time.Now())
	_, err := f.analytics.GetAdvancedAnalytics(context.Background(), 1, app.Period("14d"))
	assert.ErrorIs(t, err, app.ErrInvalidPeriod)
}

func TestAnalyticsService_NoProfile(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.drink(t, 1, 500, now)

	a, err := f.analytics.GetAdvancedAnalytics(context.Background(), 1, app.Period30d)
	require.NoError(t, err)
	require.Len(t, a.Daily, 30)
	assert.Equal(t, 0, a.Daily[29].Goal)
	assert.False(t, a.Daily[29].GoalMet)
	assert.Equal(t, 0, a.Monthly.ConsistencyScore)
}
