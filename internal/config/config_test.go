package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DASHBOARD_CACHE_TTL", "")
	t.Setenv("REQUIRE_EMAIL_VERIFICATION", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.False(t, cfg.RequireEmailVerification)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DASHBOARD_CACHE_TTL", "30s")
	t.Setenv("REQUIRE_EMAIL_VERIFICATION", "true")
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.DashboardCacheTTL)
	assert.True(t, cfg.RequireEmailVerification)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/portal"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "PUBLIC_API_KEY")
	assert.NotContains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/portal", JWTSecret: "s", PublicAPIKey: "k"}

	assert.NoError(t, cfg.Validate())
}
