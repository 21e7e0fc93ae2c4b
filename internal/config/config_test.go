package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "STORE", "DEFAULT_TIMEZONE", "JWT_TTL", "FORWARD_AUTH", "WEATHER_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
	assert.Equal(t, 720*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.WeatherTimeout)
	assert.False(t, cfg.ForwardAuth)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORE", "MEMORY")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Paris")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("FORWARD_AUTH", "true")
	t.Setenv("WEATHER_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "Europe/Paris", cfg.DefaultTimezone)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.ForwardAuth)
	assert.Equal(t, 5*time.Second, cfg.WeatherTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Config{Store: StorePostgres, DefaultTimezone: "UTC"}
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg = Config{Store: "sqlite", DefaultTimezone: "UTC"}
	assert.ErrorContains(t, cfg.Validate(), "unknown STORE")

	cfg = Config{Store: StoreMemory, DefaultTimezone: "Nowhere/Land"}
	assert.ErrorContains(t, cfg.Validate(), "DEFAULT_TIMEZONE")

	cfg = Config{Store: StoreMemory, DefaultTimezone: "UTC", OIDCIssuer: "https://id.example.com", OIDCClientID: "hydration"}
	assert.True(t, cfg.SSOEnabled())
	assert.ErrorContains(t, cfg.Validate(), "OIDC_REDIRECT_URL")
}
