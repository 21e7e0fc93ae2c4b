package postgres

import (
	"context"
	"database/sql"

	"hydration/internal/domain"
)

// GetHydrationProfile returns the user's profile or nil when none exists.
func (d *DB) GetHydrationProfile(ctx context.Context, userID int64) (*domain.HydrationProfile, error) {
	var p domain.HydrationProfile
	var custom sql.NullInt64
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, weight_kg, gender, activity_level, daily_goal, custom_goal, timezone, location, use_geolocation, use_weather, updated_at
		FROM hydration_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.WeightKg, &p.Gender, &p.ActivityLevel, &p.DailyGoal, &custom,
		&p.Timezone, &p.Location, &p.UseGeolocation, &p.UseWeather, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if custom.Valid {
		g := int(custom.Int64)
		p.CustomGoal = &g
	}
	return &p, nil
}

// UpsertHydrationProfile creates the profile or overwrites every field.
func (d *DB) UpsertHydrationProfile(ctx context.Context, p domain.HydrationProfile) error {
	var custom sql.NullInt64
	if p.CustomGoal != nil {
		custom = sql.NullInt64{Int64: int64(*p.CustomGoal), Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO hydration_profiles (user_id, weight_kg, gender, activity_level, daily_goal, custom_goal, timezone, location, use_geolocation, use_weather, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			gender = EXCLUDED.gender,
			activity_level = EXCLUDED.activity_level,
			daily_goal = EXCLUDED.daily_goal,
			custom_goal = EXCLUDED.custom_goal,
			timezone = EXCLUDED.timezone,
			location = EXCLUDED.location,
			use_geolocation = EXCLUDED.use_geolocation,
			use_weather = EXCLUDED.use_weather,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.WeightKg, p.Gender, p.ActivityLevel, p.DailyGoal, custom,
		p.Timezone, p.Location, p.UseGeolocation, p.UseWeather, p.UpdatedAt.UTC(),
	)
	return err
}
