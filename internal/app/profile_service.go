package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hydration/internal/domain"
)

// ErrProfileRequired is returned by operations that need a saved profile.
var ErrProfileRequired = errors.New("hydration profile not set up")

// ProfileInput is the validated shape accepted by SaveProfile.
type ProfileInput struct {
	Weight         float64
	WeightUnit     string
	Gender         domain.Gender
	ActivityLevel  domain.ActivityLevel
	CustomGoal     *int
	Timezone       string
	Location       string
	UseGeolocation bool
	UseWeather     bool
}

// Validate checks every field and normalises the weight to kilograms.
func (in *ProfileInput) Validate() (weightKg float64, err error) {
	unit := in.WeightUnit
	if unit == "" {
		unit = domain.UnitKg
	}
	weightKg, ok := domain.WeightToKg(in.Weight, unit)
	if !ok {
		return 0, fmt.Errorf("%w: weightUnit must be \"kg\" or \"lb\"", domain.ErrValidation)
	}
	if weightKg < domain.MinWeightKg || weightKg > domain.MaxWeightKg {
		return 0, fmt.Errorf("%w: weight must be within [%d, %d] kg", domain.ErrValidation, domain.MinWeightKg, domain.MaxWeightKg)
	}
	if !in.Gender.Valid() {
		return 0, fmt.Errorf("%w: unknown gender %q", domain.ErrValidation, in.Gender)
	}
	if !in.ActivityLevel.Valid() {
		return 0, fmt.Errorf("%w: unknown activityLevel %q", domain.ErrValidation, in.ActivityLevel)
	}
	if in.CustomGoal != nil && (*in.CustomGoal < domain.MinCustomGoalMl || *in.CustomGoal > domain.MaxCustomGoalMl) {
		return 0, fmt.Errorf("%w: customGoal must be within [%d, %d] ml", domain.ErrValidation, domain.MinCustomGoalMl, domain.MaxCustomGoalMl)
	}
	if in.Timezone != "" && !domain.ValidTimezone(in.Timezone) {
		return 0, fmt.Errorf("%w: unknown timezone %q", domain.ErrValidation, in.Timezone)
	}
	if len(in.Location) > 128 {
		return 0, fmt.Errorf("%w: location too long", domain.ErrValidation)
	}
	return weightKg, nil
}

// ProfileService encapsulates hydration profile use cases.
type ProfileService struct {
	repo domain.ProfileRepository
	now  func() time.Time
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo, now: time.Now}
}

// GetProfile returns the user's profile or nil when none was saved yet.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*domain.HydrationProfile, error) {
	return s.repo.GetHydrationProfile(ctx, userID)
}

// SaveProfile validates input, derives the daily goal and upserts the
// profile, creating it on first save.
func (s *ProfileService) SaveProfile(ctx context.Context, userID int64, in ProfileInput) (*domain.HydrationProfile, error) {
	weightKg, err := in.Validate()
	if err != nil {
		return nil, err
	}
	p := domain.HydrationProfile{
		UserID:         userID,
		WeightKg:       weightKg,
		Gender:         in.Gender,
		ActivityLevel:  in.ActivityLevel,
		DailyGoal:      domain.CalculateDailyGoal(weightKg, in.Gender, in.ActivityLevel),
		CustomGoal:     in.CustomGoal,
		Timezone:       in.Timezone,
		Location:       strings.TrimSpace(in.Location),
		UseGeolocation: in.UseGeolocation,
		UseWeather:     in.UseWeather,
		UpdatedAt:      s.now().UTC(),
	}
	if err := s.repo.UpsertHydrationProfile(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}
