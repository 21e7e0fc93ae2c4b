package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hydration/internal/domain"
)

func TestCountStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		end   string
		want  int
	}{
		{"no history", nil, "2026-05-10", 0},
		{"today and yesterday", []string{"2026-05-10", "2026-05-09"}, "2026-05-10", 2},
		{"today missing breaks", []string{"2026-05-09", "2026-05-08"}, "2026-05-10", 0},
		{"gap stops walk", []string{"2026-05-10", "2026-05-09", "2026-05-07"}, "2026-05-10", 2},
		{"unordered input", []string{"2026-05-08", "2026-05-10", "2026-05-09"}, "2026-05-10", 3},
		{"across month", []string{"2026-03-01", "2026-02-28", "2026-02-27"}, "2026-03-01", 3},
		{"bad end date", []string{"2026-05-10"}, "nope", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.CountStreak(tc.dates, tc.end))
		})
	}
}

func TestCountStreak_Idempotent(t *testing.T) {
	dates := []string{"2026-05-10", "2026-05-09", "2026-05-08"}
	first := domain.CountStreak(dates, "2026-05-10")
	second := domain.CountStreak(dates, "2026-05-10")
	assert.Equal(t, first, second)
	assert.Equal(t, 3, first)
}

func TestLongestRun(t *testing.T) {
	assert.Equal(t, 0, domain.LongestRun(nil))
	assert.Equal(t, 0, domain.LongestRun([]bool{false, false}))
	assert.Equal(t, 3, domain.LongestRun([]bool{true, false, true, true, true, false, true}))
	assert.Equal(t, 2, domain.LongestRun([]bool{false, true, true}))
}
