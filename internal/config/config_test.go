package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "catalog-admin", cfg.App.Name)
	require.Equal(t, 168, cfg.Auth.AdminTokenTTLHours)
	require.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadProductionWithSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "super-secret", cfg.Auth.JWTSecret)
}

func TestOTPTTLFallback(t *testing.T) {
	cfg := AuthConfig{OTPTTLMinutes: 0}
	require.Equal(t, "5m0s", cfg.OTPTTL().String())

	cfg.OTPTTLMinutes = 10
	require.Equal(t, "10m0s", cfg.OTPTTL().String())
}
