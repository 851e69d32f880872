package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GOOGLE_PLACES_API_KEY", "")
	t.Setenv("GOOGLE_PLACES_TIMEOUT", "")
	t.Setenv("REGION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Backend != "memory" {
		t.Errorf("Expected memory backend, got %s", cfg.Store.Backend)
	}
	if cfg.Places.Enabled() {
		t.Error("Places should be disabled without an API key")
	}
	if cfg.Places.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", cfg.Places.Timeout)
	}
	if cfg.Region.Default != "mumbai" {
		t.Errorf("Expected mumbai region, got %s", cfg.Region.Default)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unknown backend")
	}
}

func TestDatabaseURL(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "5432", DBName: "db", SSLMode: "disable"}
	if got := d.URL(); got != "postgres://u:p@h:5432/db?sslmode=disable" {
		t.Errorf("URL() = %s", got)
	}

	d.URLValue = "postgres://override"
	if got := d.URL(); got != "postgres://override" {
		t.Errorf("URL() with DATABASE_URL = %s", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 5 * time.Second},
		{"2s", 2 * time.Second},
		{"7", 7 * time.Second},
		{"bogus", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Setenv("TEST_DURATION", tt.value)
		if got := getEnvDuration("TEST_DURATION", 5*time.Second); got != tt.want {
			t.Errorf("getEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
