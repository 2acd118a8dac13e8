// Package config loads runtime settings from the environment, reading a
// .env file first when one exists.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBPath          string
	LogLevel        string
	LogFormat       string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load reads .env (a missing file is fine) and then the HOUSEHOLD_*
// variables. Values already set in the process environment win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getenvDefault("HOUSEHOLD_PORT", "3000"),
		DBPath:      getenvDefault("HOUSEHOLD_DB_PATH", "household.db"),
		LogLevel:    getenvDefault("HOUSEHOLD_LOG_LEVEL", "info"),
		LogFormat:   getenvDefault("HOUSEHOLD_LOG_FORMAT", "text"),
		CORSOrigins: splitList(getenvDefault("HOUSEHOLD_CORS_ORIGINS", "*")),
	}

	timeout := getenvDefault("HOUSEHOLD_SHUTDOWN_TIMEOUT", "5s")
	d, err := time.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("invalid HOUSEHOLD_SHUTDOWN_TIMEOUT %q", timeout)
	}
	cfg.ShutdownTimeout = d

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
