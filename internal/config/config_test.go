package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "http://localhost:8980" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir not defaulted")
	}
	if cfg.Offline {
		t.Error("Offline defaulted to true")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INNERVOICE_SERVICE_URL", "https://api.example.com")
	t.Setenv("INNERVOICE_DATA_DIR", "/tmp/iv-test")
	t.Setenv("INNERVOICE_HTTP_TIMEOUT", "5s")
	t.Setenv("INNERVOICE_OFFLINE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "https://api.example.com" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
	if cfg.DataDir != "/tmp/iv-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !cfg.Offline {
		t.Error("Offline flag ignored")
	}
	if got := cfg.StorePath(); got != filepath.Join("/tmp/iv-test", "innervoice.db") {
		t.Errorf("StorePath = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"unknown": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
