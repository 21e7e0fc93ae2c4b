package domain

import (
	"context"
	"fmt"
	"time"
)

// Achievement is an entry of the static achievement catalog.
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserAchievement records when a user unlocked an achievement.
type UserAchievement struct {
	UserID     int64     `json:"userId"`
	Code       string    `json:"code"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// AchievementCatalog lists every achievement in display order.
var AchievementCatalog = []Achievement{
	{Code: "first_sip", Name: "First Sip", Description: "Log your first drink"},
	{Code: "goal_getter", Name: "Goal Getter", Description: "Meet your daily goal"},
	{Code: "streak_3", Name: "On a Roll", Description: "Meet your goal 3 days in a row"},
	{Code: "streak_7", Name: "Week Warrior", Description: "Meet your goal 7 days in a row"},
	{Code: "streak_30", Name: "Hydration Habit", Description: "Meet your goal 30 days in a row"},
	{Code: "big_gulp", Name: "Big Gulp", Description: "Log at least 1000ml in one drink"},
	{Code: "variety", Name: "Variety Pack", Description: "Log 3 different beverages in one day"},
}

// EarnedAchievements returns the catalog codes satisfied by a day's summary
// and logs. Callers decide which of them are new.
func EarnedAchievements(s DailySummary, dayLogs []IntakeLog) []string {
	var codes []string
	if s.LogCount > 0 {
		codes = append(codes, "first_sip")
	}
	if s.GoalMet {
		codes = append(codes, "goal_getter")
	}
	for _, n := range []int{3, 7, 30} {
		if s.GoalMet && s.StreakDay >= n {
			codes = append(codes, fmt.Sprintf("streak_%d", n))
		}
	}
	beverages := map[string]struct{}{}
	bigGulp := false
	for _, l := range dayLogs {
		beverages[l.BeverageType] = struct{}{}
		if l.AmountMl >= 1000 {
			bigGulp = true
		}
	}
	if bigGulp {
		codes = append(codes, "big_gulp")
	}
	if len(beverages) >= 3 {
		codes = append(codes, "variety")
	}
	return codes
}

// AchievementRepository is the port for per-user unlock records.
type AchievementRepository interface {
	// UnlockAchievement inserts the unlock if absent and reports whether it was new.
	UnlockAchievement(ctx context.Context, userID int64, code string, at time.Time) (bool, error)
	ListUserAchievements(ctx context.Context, userID int64) ([]UserAchievement, error)
}
