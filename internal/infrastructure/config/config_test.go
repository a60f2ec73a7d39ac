package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SSR_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.App.Port)
	assert.Equal(t, "ssr", cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 30*time.Minute, cfg.OTP.ResetWindow)
	assert.Equal(t, 3, cfg.OTP.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.OTP.SweepInterval)
	assert.Equal(t, 5, cfg.RateLimit.SendOTPRequests)
	assert.Equal(t, 10, cfg.RateLimit.VerifyOTPRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("SSR_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SSR_JWT_SECRET", "test-secret")
	t.Setenv("SSR_DATABASE_HOST", "db.internal")
	t.Setenv("SSR_APP_PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "8081", cfg.App.Port)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "localhost", Port: 3306, User: "root", Password: "pw", DBName: "ssr"}

	assert.Equal(t,
		"root:pw@tcp(localhost:3306)/ssr?charset=utf8mb4&parseTime=True&loc=Local",
		c.DSN())
}
