// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every knob the server reads at startup.
type Config struct {
	Port            int
	DBPath          string
	JWTSecret       string
	ClearPIN        string
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load collects configuration from environment with defaults.
//
// JWT_SECRET has no default on purpose — the server refuses to start
// without one rather than shipping a guessable signing key.
// CLEAR_PIN defaults to the historical "1234"; override it in any real
// deployment.
func Load() Config {
	return Config{
		Port:            atoienv("PORT", 8080),
		DBPath:          getenv("DB_PATH", "data/shop.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ClearPIN:        getenv("CLEAR_PIN", "1234"),
		ShutdownTimeout: time.Duration(atoienv("SHUTDOWN_TIMEOUT", 30)) * time.Second,
	}
}
