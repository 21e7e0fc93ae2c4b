//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"hydration/internal/domain"

	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("hydration"),
		postgrescontainer.WithUsername("hydration"),
		postgrescontainer.WithPassword("hydration"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepositoriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	// Migrations are idempotent.
	require.NoError(t, db.migrate(ctx))

	u, err := db.Create(ctx, "alice", "hash")
	require.NoError(t, err)
	_, err = db.Create(ctx, "alice", "hash")
	require.Error(t, err)

	goal := 2500
	require.NoError(t, db.UpsertHydrationProfile(ctx, domain.HydrationProfile{
		UserID: u.ID, WeightKg: 70, Gender: domain.GenderFemale, ActivityLevel: domain.ActivitySedentary,
		DailyGoal: 2450, CustomGoal: &goal, Timezone: "Europe/Berlin", UpdatedAt: time.Now(),
	}))
	p, err := db.GetHydrationProfile(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, 2500, p.EffectiveGoal())

	loggedAt := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	for i, ml := range []int{250, 500} {
		_, err := db.CreateIntakeLog(ctx, domain.IntakeLog{
			UserID: u.ID, AmountMl: ml, BeverageType: "water", HydrationPercentage: 100,
			LoggedAt: loggedAt.Add(time.Duration(i) * time.Hour), Date: "2024-03-10",
		})
		require.NoError(t, err)
	}
	total, err := db.GetTotalIntakeForDate(ctx, u.ID, "2024-03-10")
	require.NoError(t, err)
	require.Equal(t, 750, total)

	recent, err := db.ListRecentIntakeLogs(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, 500, recent[0].AmountMl)

	sum := domain.DailySummary{UserID: u.ID, Date: "2024-03-10", TotalIntake: 750, GoalAmount: 2500, LogCount: 2}
	require.NoError(t, db.UpsertDailySummary(ctx, sum))
	sum.TotalIntake, sum.GoalMet, sum.StreakDay = 2600, true, 1
	require.NoError(t, db.UpsertDailySummary(ctx, sum))

	stored, err := db.GetDailySummary(ctx, u.ID, "2024-03-10")
	require.NoError(t, err)
	require.Equal(t, sum, *stored)

	met, err := db.ListGoalMetSummaries(ctx, u.ID, "2024-03-10", 10)
	require.NoError(t, err)
	require.Len(t, met, 1)

	isNew, err := db.UnlockAchievement(ctx, u.ID, "goal_getter", time.Now())
	require.NoError(t, err)
	require.True(t, isNew)
	isNew, err = db.UnlockAchievement(ctx, u.ID, "goal_getter", time.Now())
	require.NoError(t, err)
	require.False(t, isNew)

	require.NoError(t, db.Delete(ctx, u.ID))
	gone, err := db.GetDailySummary(ctx, u.ID, "2024-03-10")
	require.NoError(t, err)
	require.Nil(t, gone)
	logs, err := db.GetIntakeLogsByDate(ctx, u.ID, "2024-03-10")
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestSessionRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	sessions := NewSessionRepo(db)

	u, err := db.Create(ctx, "bob", "")
	require.NoError(t, err)

	require.NoError(t, sessions.Create(ctx, u.ID, "tok", "agent", "10.0.0.1", time.Now().Add(time.Hour)))
	s, err := sessions.GetByToken(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "agent", s.UserAgent)
	require.Equal(t, "10.0.0.1", s.IP)

	require.NoError(t, sessions.Delete(ctx, "tok"))
	s, err = sessions.GetByToken(ctx, "tok")
	require.NoError(t, err)
	require.Nil(t, s)
}
