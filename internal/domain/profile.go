package domain

import (
	"context"
	"math"
	"time"
)

// Gender is the self-reported gender used by the goal calculator.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ActivityLevel is one of five self-reported activity buckets.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:        1.0,
	ActivityLightlyActive:    1.1,
	ActivityModeratelyActive: 1.2,
	ActivityVeryActive:       1.3,
	ActivityExtremelyActive:  1.4,
}

// Valid reports whether a is one of the five known activity levels.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

const (
	mlPerKg         = 35
	maleMultiplier  = 1.1
	goalRoundingMl  = 50
	MinWeightKg     = 30
	MaxWeightKg     = 300
	MinCustomGoalMl = 500
	MaxCustomGoalMl = 10000
)

// CalculateDailyGoal returns the daily hydration goal in ml for a body weight,
// gender and activity level, rounded to the nearest 50 ml. Unknown activity
// levels use a multiplier of 1.0. Inputs are assumed to be validated.
func CalculateDailyGoal(weightKg float64, gender Gender, activity ActivityLevel) int {
	base := weightKg * mlPerKg
	if gender == GenderMale {
		base *= maleMultiplier
	}
	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = 1.0
	}
	base *= mult
	return int(math.Round(base/goalRoundingMl)) * goalRoundingMl
}

// HydrationProfile holds the per-user inputs for the goal calculation.
type HydrationProfile struct {
	UserID         int64         `json:"userId"`
	WeightKg       float64       `json:"weightKg"`
	Gender         Gender        `json:"gender"`
	ActivityLevel  ActivityLevel `json:"activityLevel"`
	DailyGoal      int           `json:"dailyGoal"`
	CustomGoal     *int          `json:"customGoal"`
	Timezone       string        `json:"timezone"`
	Location       string        `json:"location"`
	UseGeolocation bool          `json:"useGeolocation"`
	UseWeather     bool          `json:"useWeather"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// EffectiveGoal returns the custom goal when one is set, otherwise the
// computed daily goal.
func (p *HydrationProfile) EffectiveGoal() int {
	if p.CustomGoal != nil {
		return *p.CustomGoal
	}
	return p.DailyGoal
}

// ProfileRepository is the port for hydration profile persistence.
type ProfileRepository interface {
	GetHydrationProfile(ctx context.Context, userID int64) (*HydrationProfile, error)
	UpsertHydrationProfile(ctx context.Context, p HydrationProfile) error
}
