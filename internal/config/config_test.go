package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("API_BASE_URL")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("expected default port 3001, got %s", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("expected default backend origin, got %s", cfg.APIBaseURL)
	}
	if cfg.PollInterval() != 10*time.Second {
		t.Errorf("expected 10s poll interval, got %s", cfg.PollInterval())
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("expected default CORS origin, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	os.Setenv("API_BASE_URL", "http://clinic.local:8080/")
	defer os.Unsetenv("API_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "http://clinic.local:8080" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}
}

func TestLoad_SplitsCORSOrigins(t *testing.T) {
	os.Setenv("CORS_ORIGINS", "http://a.local,http://b.local")
	defer os.Unsetenv("CORS_ORIGINS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{APIBaseURL: "http://localhost:8080", APITimeoutSeconds: 5, PollIntervalSeconds: 10}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]Config{
		"bad scheme":    {APIBaseURL: "ftp://x", APITimeoutSeconds: 5, PollIntervalSeconds: 10},
		"no host":       {APIBaseURL: "http://", APITimeoutSeconds: 5, PollIntervalSeconds: 10},
		"zero timeout":  {APIBaseURL: "http://x", APITimeoutSeconds: 0, PollIntervalSeconds: 10},
		"zero interval": {APIBaseURL: "http://x", APITimeoutSeconds: 5, PollIntervalSeconds: 0},
		"negative rps":  {APIBaseURL: "http://x", APITimeoutSeconds: 5, PollIntervalSeconds: 10, OutboundRPS: -1},
	}
	for name, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
