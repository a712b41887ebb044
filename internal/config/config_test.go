package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.General.DefaultBudget = 3500
	cfg.Budget.Overshoot = "ceiling"
	cfg.Appearance.Theme = "tokyo-night"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestLoadFromPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[budget]\novershoot = \"ceiling\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Budget.Overshoot != "ceiling" {
		t.Fatalf("overshoot = %q", cfg.Budget.Overshoot)
	}
	if cfg.General.DefaultBudget != 2000 || cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDBPathPrecedence(t *testing.T) {
	t.Setenv("TALLY_DB", "")
	t.Setenv("XDG_DATA_HOME", "/xdg")

	cfg := DefaultConfig()
	if got := DBPath(cfg); got != filepath.Join("/xdg", "tally", "tally.db") {
		t.Fatalf("default DBPath = %q", got)
	}

	cfg.General.DBPath = "/from/config.db"
	if got := DBPath(cfg); got != "/from/config.db" {
		t.Fatalf("config DBPath = %q", got)
	}

	t.Setenv("TALLY_DB", "/from/env.db")
	if got := DBPath(cfg); got != "/from/env.db" {
		t.Fatalf("env DBPath = %q", got)
	}
}
