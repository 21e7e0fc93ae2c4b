package app

import (
	"context"
	"time"

	"hydration/internal/domain"
)

// TimezoneResolver maps a user to the zone used for calendar-date bucketing.
type TimezoneResolver struct {
	profiles  domain.ProfileRepository
	defaultTZ string
	now       func() time.Time
}

// NewTimezoneResolver creates a resolver that falls back to defaultTZ for
// users without a profile timezone.
func NewTimezoneResolver(profiles domain.ProfileRepository, defaultTZ string) *TimezoneResolver {
	return &TimezoneResolver{profiles: profiles, defaultTZ: defaultTZ, now: time.Now}
}

// WithClock replaces the resolver's time source.
func (r *TimezoneResolver) WithClock(now func() time.Time) *TimezoneResolver {
	r.now = now
	return r
}

// Now returns the current instant from the resolver's clock.
func (r *TimezoneResolver) Now() time.Time {
	return r.now()
}

// Location returns the user's configured zone.
func (r *TimezoneResolver) Location(ctx context.Context, userID int64) (*time.Location, error) {
	p, err := r.profiles.GetHydrationProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	tz := ""
	if p != nil {
		tz = p.Timezone
	}
	return domain.LoadLocation(tz, r.defaultTZ), nil
}

// Today returns the user's current calendar date.
func (r *TimezoneResolver) Today(ctx context.Context, userID int64) (string, error) {
	loc, err := r.Location(ctx, userID)
	if err != nil {
		return "", err
	}
	return domain.CurrentDateInTimezone(r.now, loc), nil
}
