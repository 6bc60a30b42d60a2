package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, int32(8), cfg.PGMaxConns)
	assert.Empty(t, cfg.AuthBusAddr)
	assert.Empty(t, cfg.NotificationsBusAddr)
	assert.Equal(t, 5*time.Second, cfg.NotificationsBusTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresTokenSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "unit-test-secret")
	t.Setenv("TOKEN_TTL", "0s")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "unit-test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "14")
	t.Setenv("AUTH_BUS_ADDR", "10.0.0.5:6379")
	t.Setenv("AUTH_BUS_TIMEOUT", "2s")
	t.Setenv("NOTIFICATIONS_BUS_ADDR", "10.0.0.6:6379")
	t.Setenv("NOTIFICATIONS_BUS_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 14, cfg.BcryptCost)
	assert.Equal(t, "10.0.0.5:6379", cfg.AuthBusAddr)
	assert.Equal(t, 2*time.Second, cfg.AuthBusTimeout)
	assert.Equal(t, "10.0.0.6:6379", cfg.NotificationsBusAddr)
	assert.Equal(t, 3*time.Second, cfg.NotificationsBusTimeout)
}
