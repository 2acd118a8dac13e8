package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"HOUSEHOLD_PORT", "HOUSEHOLD_DB_PATH", "HOUSEHOLD_LOG_LEVEL",
		"HOUSEHOLD_LOG_FORMAT", "HOUSEHOLD_CORS_ORIGINS", "HOUSEHOLD_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Port)
	}
	if cfg.DBPath != "household.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOUSEHOLD_PORT", "8080")
	t.Setenv("HOUSEHOLD_DB_PATH", "/var/lib/household/data.db")
	t.Setenv("HOUSEHOLD_LOG_FORMAT", "json")
	t.Setenv("HOUSEHOLD_CORS_ORIGINS", "http://kitchen.local/, http://hall.local ,")
	t.Setenv("HOUSEHOLD_SHUTDOWN_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPath != "/var/lib/household/data.db" || cfg.LogFormat != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	want := []string{"http://kitchen.local", "http://hall.local"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("cors = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("cors[%d] = %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("HOUSEHOLD_SHUTDOWN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}
