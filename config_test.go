package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jask/modalstack/modal"
)

func TestParseStackConfig(t *testing.T) {
	data := []byte(`
[[modal]]
name = "alert"
title = "Heads Up"
width = 40
accent = "YELLOW"

[[modal]]
name = "wizard"

[[shortcut]]
scope = "app"
action = "open_alert"
keys = ["f1"]
`)
	cfg, err := parseStackConfig(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Modal) != 2 {
		t.Fatalf("parsed %d modals, want 2", len(cfg.Modal))
	}
	if cfg.Modal[0].Title != "Heads Up" || cfg.Modal[0].Accent != "yellow" {
		t.Fatalf("modal[0] = %+v", cfg.Modal[0])
	}
	// Missing title defaults to the capitalized name; out-of-range width is
	// replaced.
	if cfg.Modal[1].Title != "Wizard" {
		t.Fatalf("default title = %q", cfg.Modal[1].Title)
	}
	if cfg.Modal[1].Width < minModalWidth || cfg.Modal[1].Width > maxModalWidth {
		t.Fatalf("width not normalized: %d", cfg.Modal[1].Width)
	}
	if len(cfg.Shortcut) != 1 || cfg.Shortcut[0].Keys[0] != "f1" {
		t.Fatalf("shortcuts = %+v", cfg.Shortcut)
	}
}

func TestParseStackConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"no modals", `[[shortcut]]
scope = "app"
action = "quit"
keys = ["x"]`, "no modals"},
		{"empty name", `[[modal]]
name = ""`, "name is required"},
		{"duplicate name", `[[modal]]
name = "alert"
[[modal]]
name = "alert"`, "duplicate"},
		{"bad toml", `[[modal`, "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseStackConfig([]byte(tt.toml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadStackConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modals.toml")
	if err := os.WriteFile(path, []byte(defaultStackTOML), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadStackConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Modal) != 3 {
		t.Fatalf("loaded %d modals, want 3", len(cfg.Modal))
	}

	// An explicit path that does not exist is an error, not auto-created.
	if _, err := loadStackConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("missing explicit config did not error")
	}
}

func TestBuildDefinition(t *testing.T) {
	def := buildDefinition(defaultStackConfig().Modal)
	if def.Len() != 3 {
		t.Fatalf("definition has %d entries, want 3", def.Len())
	}
	cfg, ok := def.Lookup(modal.Name("confirm"))
	if !ok {
		t.Fatalf("confirm not defined")
	}
	if cfg.Title != "Confirm" || !cfg.DimBackdrop {
		t.Fatalf("confirm config = %+v", cfg)
	}
	if def.Has("wizard") {
		t.Fatalf("undefined name reported present")
	}
}
