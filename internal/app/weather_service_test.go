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

type mockWeatherProvider struct {
	currentWeatherFn func(ctx context.Context, q domain.WeatherQuery) (*domain.Weather, error)
}

func (m *mockWeatherProvider) CurrentWeather(ctx context.Context, q domain.WeatherQuery) (*domain.Weather, error) {
	if m.currentWeatherFn != nil {
		return m.currentWeatherFn(ctx, q)
	}
	return nil, errors.New("not configured")
}

func TestWeatherService_AdjustmentByCoordinates(t *testing.T) {
	f := newFixture(t, time.Now())
	provider := &mockWeatherProvider{
		currentWeatherFn: func(ctx context.Context, q domain.WeatherQuery) (*domain.Weather, error) {
			require.NotNil(t, q.Lat)
			assert.Equal(t, 40.7, *q.Lat)
			return &domain.Weather{Temperature: 32, Humidity: 85, FeelsLike: 38, Location: "New York"}, nil
		},
	}
	svc := app.NewWeatherService(provider, f.db)

	lat, lon := 40.7, -74.0
	report, err := svc.Adjustment(context.Background(), 1, domain.WeatherQuery{Lat: &lat, Lon: &lon})
	require.NoError(t, err)
	assert.Equal(t, "New York", report.Weather.Location)
	assert.Equal(t, 600, report.Adjustment.AdjustmentMl)
}

func TestWeatherService_FallsBackToProfileLocation(t *testing.T) {
	f := newFixture(t, time.Now())
	f.saveProfile(t, 1, app.ProfileInput{Weight: 70, Gender: domain.GenderMale, ActivityLevel: domain.ActivitySedentary, Location: "Oslo", UseWeather: true})

	var gotCity string
	provider := &mockWeatherProvider{
		currentWeatherFn: func(ctx context.Context, q domain.WeatherQuery) (*domain.Weather, error) {
			gotCity = q.City
			return &domain.Weather{Temperature: 20, Humidity: 50, FeelsLike: 20, Location: q.City}, nil
		},
	}
	svc := app.NewWeatherService(provider, f.db)

	report, err := svc.Adjustment(context.Background(), 1, domain.WeatherQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Oslo", gotCity)
	assert.Equal(t, 0, report.Adjustment.AdjustmentMl)
}

func TestWeatherService_Errors(t *testing.T) {
	f := newFixture(t, time.Now())
	lat := 1.0

	_, err := app.NewWeatherService(nil, f.db).Adjustment(context.Background(), 1, domain.WeatherQuery{City: "Oslo"})
	assert.ErrorIs(t, err, app.ErrWeatherUnavailable)

	svc := app.NewWeatherService(&mockWeatherProvider{}, f.db)
	_, err = svc.Adjustment(context.Background(), 1, domain.WeatherQuery{Lat: &lat})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Adjustment(context.Background(), 1, domain.WeatherQuery{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Adjustment(context.Background(), 1, domain.WeatherQuery{City: "Oslo"})
	assert.EqualError(t, err, "not configured")
}
