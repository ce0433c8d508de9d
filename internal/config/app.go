package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds everything except the database settings
type AppConfig struct {
	Env               string
	ServerPort        string
	UploadsDir        string
	JWTSecret         string
	JWTExpHours       int64
	InitialAdminPhone string
	PhoneRegion       string
	LogLevel          string
	CORSOrigins       []string
	RedisAddress      string

	LoginMaxAttempts int
	LoginWindow      time.Duration
	StoreMaxRequests int
	StoreWindow      time.Duration
}

// IsProduction reports whether GO_ENV is production
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadAppConfig reads the application settings from environment variables
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Env:               strings.TrimSpace(os.Getenv("GO_ENV")),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		JWTSecret:         os.Getenv("JWT_SECRET_KEY"),
		InitialAdminPhone: os.Getenv("INITIAL_ADMIN_PHONE"),
		PhoneRegion:       getEnv("PHONE_REGION", "AF"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		CORSOrigins:       splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RedisAddress:      strings.TrimSpace(os.Getenv("REDIS_ADDRESS")),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	cfg.JWTExpHours = int64(getEnvInt("JWT_EXPIRATION_HOURS", 24))
	cfg.LoginMaxAttempts = getEnvInt("LOGIN_MAX_ATTEMPTS", 5)
	cfg.LoginWindow = time.Duration(getEnvInt("LOGIN_WINDOW_SECONDS", 900)) * time.Second
	cfg.StoreMaxRequests = getEnvInt("RATE_LIMIT_MAX_REQUESTS", 600)
	cfg.StoreWindow = time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def for missing or non-positive values
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logg.WithField("key", key).Warnf("invalid value %q, defaulting to %d", v, def)
		return def
	}
	return n
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
