// Package config loads process-wide configuration at startup.
// Components receive the resulting struct by injection and never read
// environment variables at request time.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the server.
type Config struct {
	// Addr is the listen address for the HTTP server (e.g. ":8080").
	Addr string

	// JWTSecret signs and verifies access tokens.
	JWTSecret string

	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration

	// RefreshTokenTTL is the lifetime of refresh-token sessions.
	RefreshTokenTTL time.Duration

	// CORSOrigin is the allowed browser origin for the frontend.
	CORSOrigin string

	// AuthRateLimit is the number of auth attempts allowed per client IP
	// within AuthRateWindow.
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() Config {
	return Config{
		Addr:            getEnv("ADDR", ":8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AuthRateLimit:   getInt("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:  getDuration("AUTH_RATE_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
