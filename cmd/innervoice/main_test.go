package main

import (
	"strings"
	"testing"
)

func TestRootCommandStructure(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Use != "innervoice" {
		t.Errorf("Use = %q", cmd.Use)
	}

	want := []string{
		"login", "register", "logout", "whoami",
		"personas", "chat", "journal", "settings", "consent", "dev-server",
	}
	have := map[string]bool{}
	for _, sub := range cmd.Commands() {
		have[strings.Fields(sub.Use)[0]] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"service-url", "data-dir", "debug", "offline"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("INNERVOICE_SERVICE_URL", "http://from-env:1234")

	serviceURL = ""
	dataDir = ""
	offline = false
	t.Cleanup(func() { serviceURL, dataDir, offline = "", "", false })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ServiceURL != "http://from-env:1234" {
		t.Errorf("ServiceURL = %q, want the env value", cfg.ServiceURL)
	}

	serviceURL = "http://from-flag:5678"
	dataDir = "/tmp/iv-cli-test"
	offline = true
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ServiceURL != "http://from-flag:5678" {
		t.Errorf("ServiceURL = %q, want the flag value", cfg.ServiceURL)
	}
	if cfg.DataDir != "/tmp/iv-cli-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !cfg.Offline {
		t.Error("offline flag not applied")
	}
}

func TestParseDay(t *testing.T) {
	if _, err := parseDay("2026-08-29"); err != nil {
		t.Errorf("valid day rejected: %v", err)
	}
	if d, err := parseDay(""); err != nil || !d.IsZero() {
		t.Errorf("empty day = (%v, %v), want zero time", d, err)
	}
	if _, err := parseDay("29/08/2026"); err == nil {
		t.Error("malformed day accepted")
	}
}
