package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "abc")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.af, ,https://admin.shop.af")

	cfg, err := LoadAppConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(24), cfg.JWTExpHours)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, []string{"https://shop.af", "https://admin.shop.af"}, cfg.CORSOrigins)
	assert.Equal(t, "AF", cfg.PhoneRegion)
}

func TestLoadAppConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadAppConfig()

	assert.Error(t, err)
}

func TestLoadDBConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "jewelry")

	cfg, err := LoadDBConfig()

	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=shop password=pw dbname=jewelry sslmode=disable", cfg.DSN)

	t.Setenv("DB_HOST", "")
	_, err = LoadDBConfig()
	assert.Error(t, err)
}
