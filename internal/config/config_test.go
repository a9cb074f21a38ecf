package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "/api/v1", cfg.APIPrefix)
		assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
		assert.False(t, cfg.Auth.ReadRequiresAuth)
		assert.Equal(t, "/media/", cfg.Media.URL)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("API_PREFIX", "/api/")
		t.Setenv("READ_REQUIRES_AUTH", "true")
		t.Setenv("ACCESS_TOKEN_TTL", "15m")
		t.Setenv("MEDIA_URL", "uploads")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("MAX_BODY_BYTES", "4096")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/api", cfg.APIPrefix)
		assert.True(t, cfg.Auth.ReadRequiresAuth)
		assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, "/uploads/", cfg.Media.URL)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
	})

	t.Run("Missing secret and bad values are reported together", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ACCESS_TOKEN_TTL", "soon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "ACCESS_TOKEN_TTL")
	})
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.PostgresDSN())
}
