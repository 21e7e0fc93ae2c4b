package domain

import (
	"context"
	"time"
)

// IntakeLog is a single logged drink. Logs are append-only.
type IntakeLog struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userId"`
	AmountMl            int       `json:"amount"`
	BeverageType        string    `json:"beverageType"`
	HydrationPercentage int       `json:"hydrationPercentage"`
	LoggedAt            time.Time `json:"loggedAt"`
	// Date is the calendar date of LoggedAt in the user's timezone.
	Date string `json:"date"`
}

// EffectiveMl is the amount weighted by the beverage's hydration percentage.
func (l IntakeLog) EffectiveMl() float64 {
	return float64(l.AmountMl) * float64(l.HydrationPercentage) / 100
}

// DefaultBeverage is assumed when a log names no beverage.
const DefaultBeverage = "water"

var beverageHydration = map[string]int{
	"water":           100,
	"sparkling_water": 100,
	"tea":             90,
	"milk":            90,
	"juice":           85,
	"coffee":          80,
	"sports_drink":    95,
	"soda":            85,
	"smoothie":        80,
}

// BeverageHydration returns the default hydration percentage for a beverage.
// Unknown beverages count fully.
func BeverageHydration(beverage string) int {
	if pct, ok := beverageHydration[beverage]; ok {
		return pct
	}
	return 100
}

// KnownBeverage reports whether beverage has an entry in the hydration table.
func KnownBeverage(beverage string) bool {
	_, ok := beverageHydration[beverage]
	return ok
}

// IntakeRepository is the port for intake log persistence.
type IntakeRepository interface {
	CreateIntakeLog(ctx context.Context, log IntakeLog) (int64, error)
	GetIntakeLogsByDate(ctx context.Context, userID int64, date string) ([]IntakeLog, error)
	// GetIntakeLogsByDateRange returns logs with start <= date <= end ordered by LoggedAt.
	GetIntakeLogsByDateRange(ctx context.Context, userID int64, start, end string) ([]IntakeLog, error)
	GetTotalIntakeForDate(ctx context.Context, userID int64, date string) (int, error)
	ListRecentIntakeLogs(ctx context.Context, userID int64, limit int) ([]IntakeLog, error)
}
