package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadResolvesRelativeDefaultPath(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
default_path: "safes/home.psafe3"
display:
  no_color: true
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := filepath.Join(tmp, "safes/home.psafe3")
	if cfg.DefaultPath != want {
		t.Fatalf("expected resolved path %q, got %q", want, cfg.DefaultPath)
	}
	if !cfg.Display.NoColor {
		t.Fatalf("expected display.no_color true")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
default_path: "home.psafe3"
bogus_field: true
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected error for unknown field, got nil")
	}
}
