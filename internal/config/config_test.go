package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 20, cfg.SeedMovies)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.False(t, cfg.SeedOnStart)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_BadInteger(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "HTTP_PORT")
}

func TestValidate(t *testing.T) {
	t.Run("ShortSecret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "short"
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseDriver = "mysql"
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_DRIVER")
	})

	t.Run("CollectsAllProblems", func(t *testing.T) {
		cfg := validConfig()
		cfg.HTTPPort = 0
		cfg.LogFormat = "xml"
		err := cfg.Validate()
		assert.ErrorContains(t, err, "HTTP_PORT")
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})
}

func validConfig() *Config {
	return &Config{
		HTTPPort:       8080,
		DatabaseDriver: "sqlite",
		DatabaseURL:    "file::memory:",
		JWTSecret:      testSecret,
		JWTExpiry:      time.Minute,
		RateLimitRPS:   1,
		RateLimitBurst: 1,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}
