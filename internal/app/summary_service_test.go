package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hydration/internal/app"
	"hydration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_GoalProgressAndStreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	p := f.saveProfile(t, 1, app.ProfileInput{Weight: 80, Gender: domain.GenderFemale, ActivityLevel: domain.ActivityVeryActive})
	require.Equal(t, 3650, p.DailyGoal)

	require.NoError(t, f.db.UpsertDailySummary(ctx, domain.DailySummary{UserID: 1, Date: "2024-03-09", GoalAmount: 3650, GoalMet: true, StreakDay: 1}))

	f.drink(t, 1, 2000, now.Add(-2*time.Hour))
	sum, err := f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, 2000, sum.TotalIntake)
	assert.Equal(t, 3650, sum.GoalAmount)
	assert.False(t, sum.GoalMet)
	assert.Equal(t, 0, sum.StreakDay)

	f.drink(t, 1, 2000, now.Add(-time.Hour))
	sum, err = f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 4000, sum.TotalIntake)
	assert.True(t, sum.GoalMet)
	assert.Equal(t, 2, sum.StreakDay)
	assert.Equal(t, 2, sum.LogCount)

	count, err := f.streaks.GetStreakCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSummaryService_UpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	f.saveProfile(t, 1, app.ProfileInput{Weight: 70, Gender: domain.GenderMale, ActivityLevel: domain.ActivitySedentary})
	f.drink(t, 1, 3000, now)

	first, err := f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	second, err := f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, *first, *second)

	stored, err := f.db.GetDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, *first, *stored)
}

func TestSummaryService_NoProfile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	f.drink(t, 1, 500, now)
	sum, err := f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	assert.Nil(t, sum)

	stored, err := f.db.GetDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSummaryService_CustomGoalSnapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	goal := 1000
	f.saveProfile(t, 1, app.ProfileInput{Weight: 70, Gender: domain.GenderMale, ActivityLevel: domain.ActivitySedentary, CustomGoal: &goal})
	f.drink(t, 1, 1000, now)

	sum, err := f.summaries.UpdateDailySummary(ctx, 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 1000, sum.GoalAmount)
	assert.True(t, sum.GoalMet)
	assert.Equal(t, 1, sum.StreakDay)
}

func TestSummaryService_RecomputeTodayUsesUserTimezone(t *testing.T) {
	ctx := context.Background()
	// 03:30 UTC is still the previous evening in New York.
	now := time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC)
	f := newFixture(t, now)

	f.saveProfile(t, 1, app.ProfileInput{Weight: 70, Gender: domain.GenderOther, ActivityLevel: domain.ActivitySedentary, Timezone: "America/New_York"})
	l := f.drink(t, 1, 400, now)
	assert.Equal(t, "2024-03-09", l.Date)

	sum, today, err := f.summaries.RecomputeToday(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", today)
	assert.Equal(t, 400, sum.TotalIntake)
}

func TestSummaryService_ListRecent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	for _, d := range []string{"2024-03-01", "2024-03-08", "2024-03-10"} {
		require.NoError(t, f.db.UpsertDailySummary(ctx, domain.DailySummary{UserID: 1, Date: d}))
	}

	rows, err := f.summaries.ListRecent(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-08", rows[0].Date)
	assert.Equal(t, "2024-03-10", rows[1].Date)
}

type failingIntakes struct {
	domain.IntakeRepository
}

func (failingIntakes) GetTotalIntakeForDate(ctx context.Context, userID int64, date string) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSummaryService_PropagatesStoreErrors(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	svc := app.NewSummaryService(failingIntakes{f.db}, f.db, f.db, f.streaks, f.tz)

	_, err := svc.UpdateDailySummary(context.Background(), 1, "2024-03-10")
	assert.EqualError(t, err, "connection reset")
}
