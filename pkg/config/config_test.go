package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://10.0.0.5:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://10.0.0.5:5000" {
		t.Fatalf("unexpected base URL %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Backend.HTTPTimeout)
	}
	if cfg.App.LogLevel != "info" {
		t.Fatalf("unexpected log level %q", cfg.App.LogLevel)
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://placeholder")
	if err := os.Unsetenv(EnvBaseURL); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvBaseURL, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoadRejectsNonHTTPScheme(t *testing.T) {
	t.Setenv(EnvBaseURL, "ftp://backend:5000")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestLoadRejectsZeroTimeout(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://backend:5000")
	t.Setenv(EnvHTTPTimeout, "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}
