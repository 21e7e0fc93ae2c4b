package app

import (
	"context"
	"errors"
	"fmt"

	"hydration/internal/domain"
)

// ErrWeatherUnavailable is returned when no weather provider is configured.
var ErrWeatherUnavailable = errors.New("weather provider not configured")

// WeatherReport pairs the observed conditions with the recommended change.
type WeatherReport struct {
	Weather    domain.Weather             `json:"weather"`
	Adjustment domain.HydrationAdjustment `json:"adjustment"`
}

// WeatherService turns provider observations into intake recommendations.
type WeatherService struct {
	provider domain.WeatherProvider
	profiles domain.ProfileRepository
}

// NewWeatherService creates a WeatherService. provider may be nil when the
// deployment has no weather API key.
func NewWeatherService(provider domain.WeatherProvider, profiles domain.ProfileRepository) *WeatherService {
	return &WeatherService{provider: provider, profiles: profiles}
}

// Enabled reports whether a provider is configured.
func (s *WeatherService) Enabled() bool {
	return s.provider != nil
}

// Adjustment fetches current weather for q, falling back to the profile
// location when q names no place, and applies the adjustment rules.
// Provider errors are returned unchanged.
func (s *WeatherService) Adjustment(ctx context.Context, userID int64, q domain.WeatherQuery) (*WeatherReport, error) {
	if s.provider == nil {
		return nil, ErrWeatherUnavailable
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return nil, fmt.Errorf("%w: lat and lon must be given together", domain.ErrValidation)
	}
	if q.Lat == nil && q.City == "" {
		p, err := s.profiles.GetHydrationProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.UseWeather || p.Location == "" {
			return nil, fmt.Errorf("%w: no location given and profile has no weather location", domain.ErrValidation)
		}
		q.City = p.Location
	}

	w, err := s.provider.CurrentWeather(ctx, q)
	if err != nil {
		return nil, err
	}
	return &WeatherReport{Weather: *w, Adjustment: domain.CalculateHydrationAdjustment(*w)}, nil
}
