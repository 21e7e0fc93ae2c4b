package domain

import (
	"context"
	"fmt"
	"math"
)

// Weather is a point-in-time observation supplied by a weather provider.
// Temperatures are in °C, humidity in percent.
type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	FeelsLike   float64 `json:"feelsLike"`
	Location    string  `json:"location"`
}

// WeatherQuery selects a location either by coordinates or by city name.
type WeatherQuery struct {
	Lat  *float64
	Lon  *float64
	City string
}

// WeatherProvider is the port for fetching current conditions.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, q WeatherQuery) (*Weather, error)
}

// HydrationAdjustment is the recommended change to the day's intake.
type HydrationAdjustment struct {
	AdjustmentMl int      `json:"adjustmentMl"`
	Reason       string   `json:"reason"`
	Factors      []string `json:"factors"`
}

const (
	hotThresholdC      = 25
	coldThresholdC     = 10
	mlPerHotDegree     = 50
	maxHeatAdjustMl    = 500
	coldAdjustMl       = -100
	dryThresholdPct    = 30
	dryAdjustMl        = 200
	humidThresholdPct  = 80
	humidAdjustMl      = 100
	feelsLikeMarginC   = 5
	feelsLikeAdjustMl  = 150
	minAdjustmentMl    = -200
	strongAdjustmentMl = 200
)

// CalculateHydrationAdjustment applies the additive weather rules and clamps
// the result so it never recommends more than a 200 ml reduction.
func CalculateHydrationAdjustment(w Weather) HydrationAdjustment {
	adj := 0
	factors := []string{}

	if w.Temperature > hotThresholdC {
		heat := int(math.Round(math.Min((w.Temperature-hotThresholdC)*mlPerHotDegree, maxHeatAdjustMl)))
		adj += heat
		factors = append(factors, fmt.Sprintf("High temperature (%.0f°C): +%dml", w.Temperature, heat))
	}
	if w.Temperature < coldThresholdC {
		adj += coldAdjustMl
		factors = append(factors, fmt.Sprintf("Cool temperature (%.0f°C): %dml", w.Temperature, coldAdjustMl))
	}
	if w.Humidity < dryThresholdPct {
		adj += dryAdjustMl
		factors = append(factors, fmt.Sprintf("Low humidity (%.0f%%): +%dml", w.Humidity, dryAdjustMl))
	}
	if w.Humidity > humidThresholdPct {
		adj += humidAdjustMl
		factors = append(factors, fmt.Sprintf("High humidity (%.0f%%): +%dml", w.Humidity, humidAdjustMl))
	}
	if w.FeelsLike > w.Temperature+feelsLikeMarginC {
		adj += feelsLikeAdjustMl
		factors = append(factors, fmt.Sprintf("Feels like %.0f°C: +%dml", w.FeelsLike, feelsLikeAdjustMl))
	}

	adj = clampAdjustment(adj)

	var reason string
	switch {
	case adj > strongAdjustmentMl:
		reason = fmt.Sprintf("Increase your water intake by %dml due to weather conditions", adj)
	case adj > 0:
		reason = fmt.Sprintf("Consider drinking an extra %dml today", adj)
	case adj < 0:
		reason = "Normal intake is fine for cool weather"
	default:
		reason = "Perfect weather for normal hydration"
	}

	return HydrationAdjustment{AdjustmentMl: adj, Reason: reason, Factors: factors}
}

func clampAdjustment(ml int) int {
	if ml < minAdjustmentMl {
		return minAdjustmentMl
	}
	return ml
}
