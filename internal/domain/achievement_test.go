package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hydration/internal/domain"
)

func TestEarnedAchievements(t *testing.T) {
	s := domain.DailySummary{LogCount: 3, GoalMet: true, StreakDay: 7}
	logs := []domain.IntakeLog{
		{AmountMl: 250, BeverageType: "water"},
		{AmountMl: 1000, BeverageType: "tea"},
		{AmountMl: 300, BeverageType: "coffee"},
	}
	got := domain.EarnedAchievements(s, logs)
	assert.ElementsMatch(t, []string{"first_sip", "goal_getter", "streak_3", "streak_7", "big_gulp", "variety"}, got)
}

func TestEarnedAchievements_NotMet(t *testing.T) {
	s := domain.DailySummary{LogCount: 1, GoalMet: false, StreakDay: 0}
	got := domain.EarnedAchievements(s, []domain.IntakeLog{{AmountMl: 200, BeverageType: "water"}})
	assert.Equal(t, []string{"first_sip"}, got)
}

func TestAchievementCatalogCodesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range domain.AchievementCatalog {
		assert.False(t, seen[a.Code], "duplicate code %s", a.Code)
		seen[a.Code] = true
	}
}
