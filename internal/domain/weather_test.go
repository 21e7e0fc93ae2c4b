package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHydrationAdjustment(t *testing.T) {
	tests := []struct {
		name        string
		weather     Weather
		wantMl      int
		wantFactors int
		wantReason  string
	}{
		{
			name:        "hot and dry",
			weather:     Weather{Temperature: 30, Humidity: 20, FeelsLike: 30},
			wantMl:      450,
			wantFactors: 2,
			wantReason:  "Increase your water intake by 450ml due to weather conditions",
		},
		{
			name:        "heat capped at 500",
			weather:     Weather{Temperature: 45, Humidity: 50, FeelsLike: 45},
			wantMl:      500,
			wantFactors: 1,
		},
		{
			name:        "mild warmth",
			weather:     Weather{Temperature: 27, Humidity: 50, FeelsLike: 27},
			wantMl:      100,
			wantFactors: 1,
			wantReason:  "Consider drinking an extra 100ml today",
		},
		{
			name:        "cold",
			weather:     Weather{Temperature: 5, Humidity: 50, FeelsLike: 3},
			wantMl:      -100,
			wantFactors: 1,
			wantReason:  "Normal intake is fine for cool weather",
		},
		{
			name:        "cold and humid",
			weather:     Weather{Temperature: 5, Humidity: 90, FeelsLike: 5},
			wantMl:      0,
			wantFactors: 2,
			wantReason:  "Perfect weather for normal hydration",
		},
		{
			name:        "perfect",
			weather:     Weather{Temperature: 20, Humidity: 50, FeelsLike: 20},
			wantMl:      0,
			wantFactors: 0,
			wantReason:  "Perfect weather for normal hydration",
		},
		{
			name:        "feels hotter",
			weather:     Weather{Temperature: 20, Humidity: 50, FeelsLike: 26},
			wantMl:      150,
			wantFactors: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateHydrationAdjustment(tc.weather)
			assert.Equal(t, tc.wantMl, got.AdjustmentMl)
			assert.Len(t, got.Factors, tc.wantFactors)
			if tc.wantReason != "" {
				assert.Equal(t, tc.wantReason, got.Reason)
			}
		})
	}
}

func TestClampAdjustment(t *testing.T) {
	assert.Equal(t, -200, clampAdjustment(-450))
	assert.Equal(t, -200, clampAdjustment(-201))
	assert.Equal(t, -200, clampAdjustment(-200))
	assert.Equal(t, -100, clampAdjustment(-100))
	assert.Equal(t, 300, clampAdjustment(300))
}
