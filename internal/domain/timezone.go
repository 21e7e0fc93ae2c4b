package domain

import (
	"time"
	_ "time/tzdata"
)

// DateLayout is the calendar-date format used for every per-day key.
const DateLayout = "2006-01-02"

// DefaultTimezone is used when a user has not configured a zone.
const DefaultTimezone = "UTC"

// LoadLocation resolves an IANA zone name, falling back to the fallback zone
// and finally to UTC when neither resolves.
func LoadLocation(tz, fallback string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if fallback != "" {
		if loc, err := time.LoadLocation(fallback); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ValidTimezone reports whether tz names a loadable zone.
func ValidTimezone(tz string) bool {
	_, err := time.LoadLocation(tz)
	return err == nil
}

// DateInTimezone returns the calendar date of t as observed in loc.
func DateInTimezone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// CurrentDateInTimezone returns today's calendar date in loc.
func CurrentDateInTimezone(now func() time.Time, loc *time.Location) string {
	return DateInTimezone(now(), loc)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC. The result is
// only used for calendar arithmetic, never as an instant.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// AddDays shifts a calendar date by n days.
func AddDays(date string, n int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}

// DateRange returns every calendar date from start to end inclusive.
func DateRange(start, end string) ([]string, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}
