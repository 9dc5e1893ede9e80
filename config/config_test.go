package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "MySecretKey", cfg.JWTSecretKey)
	assert.Equal(t, "https://authenticationservice:8084", cfg.TokenIssuer)
	assert.Equal(t, "plain", cfg.PasswordScheme)

	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, time.Hour, cfg.TokenLifetime())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8084")
	t.Setenv("SESSION_TTL_MIN", "5")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	assert.Equal(t, "bcrypt", cfg.PasswordScheme)
}
