package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/hbnb/internal/backend"
)

var envKeys = []string{
	"HBNB_PORT", "HBNB_API_BASE", "HBNB_API_TIMEOUT", "HBNB_LOG_LEVEL", "HBNB_LOG_FORMAT",
	"HBNB_COOKIE_SECRET", "HBNB_COOKIE_SALT", "HBNB_SECURE_COOKIES", "HBNB_BEHIND_PROXY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, backend.DefaultBaseURL, cfg.APIBase)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.CookieSecret)
	assert.False(t, cfg.SecureCookies)
	assert.False(t, cfg.BehindProxy)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HBNB_PORT", "9000")
	t.Setenv("HBNB_API_BASE", "https://api.example.com/api/v1")
	t.Setenv("HBNB_API_TIMEOUT", "5s")
	t.Setenv("HBNB_LOG_FORMAT", "json")
	t.Setenv("HBNB_COOKIE_SECRET", "s3cret")
	t.Setenv("HBNB_SECURE_COOKIES", "true")
	t.Setenv("HBNB_BEHIND_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://api.example.com/api/v1", cfg.APIBase)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "s3cret", cfg.CookieSecret)
	assert.True(t, cfg.SecureCookies)
	assert.True(t, cfg.BehindProxy)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HBNB_API_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "HBNB_API_TIMEOUT")
	})

	t.Run("negative timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HBNB_API_TIMEOUT", "-1s")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("secure cookies", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HBNB_SECURE_COOKIES", "maybe")
		_, err := Load()
		assert.ErrorContains(t, err, "HBNB_SECURE_COOKIES")
	})

	t.Run("behind proxy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HBNB_BEHIND_PROXY", "sometimes")
		_, err := Load()
		assert.ErrorContains(t, err, "HBNB_BEHIND_PROXY")
	})
}

func TestWriteTimeout(t *testing.T) {
	t.Run("disabled api timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HBNB_API_TIMEOUT", "0")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Zero(t, cfg.APITimeout)
		assert.Zero(t, cfg.WriteTimeout())
	})

	t.Run("api timeout plus slack", func(t *testing.T) {
		cfg := &Config{APITimeout: 5 * time.Second}
		assert.Equal(t, 15*time.Second, cfg.WriteTimeout())
	})
}
