package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/modalstack/modal"
)

// ---------------------------------------------------------------------------
// Modal stack definition (TOML-based)
// ---------------------------------------------------------------------------

// modalDef declares one modal the app is allowed to open.
type modalDef struct {
	Name        string `toml:"name"`
	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Accent      string `toml:"accent"`
	DimBackdrop bool   `toml:"dim_backdrop"`
}

// shortcutOverride rebinds a built-in scope/action pair to different keys.
type shortcutOverride struct {
	Scope  string   `toml:"scope"`
	Action string   `toml:"action"`
	Keys   []string `toml:"keys"`
}

// stackConfigFile is the top-level TOML structure.
type stackConfigFile struct {
	Modal    []modalDef         `toml:"modal"`
	Shortcut []shortcutOverride `toml:"shortcut"`
}

const defaultStackTOML = `# Modalstack modal definitions
# Add new [[modal]] blocks to register more modal types.

[[modal]]
name = "alert"
title = "Alert"
width = 44
accent = "yellow"
dim_backdrop = false

[[modal]]
name = "confirm"
title = "Confirm"
width = 48
accent = "red"
dim_backdrop = true

[[modal]]
name = "prompt"
title = "Prompt"
width = 52
accent = "teal"
dim_backdrop = true

# [[shortcut]]
# scope = "app"
# action = "open_alert"
# keys = ["a", "f1"]
`

const (
	minModalWidth = 20
	maxModalWidth = 120
)

// stackConfigDir returns the directory for modalstack config files,
// using XDG_CONFIG_HOME or falling back to ~/.config.
func stackConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "modalstack"), nil
}

// stackConfigPath returns the full path to the modals.toml file.
func stackConfigPath() (string, error) {
	dir, err := stackConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modals.toml"), nil
}

// loadStackConfig loads modal definitions from path, or from the default
// config location when path is empty. A missing default file is created with
// the built-in definitions; a missing explicit path is an error.
func loadStackConfig(path string) (stackConfigFile, error) {
	explicit := path != ""
	if !explicit {
		p, err := stackConfigPath()
		if err != nil {
			return defaultStackConfig(), err
		}
		path = p
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
				return defaultStackConfig(), fmt.Errorf("create config dir: %w", mkErr)
			}
			if wErr := os.WriteFile(path, []byte(defaultStackTOML), 0644); wErr != nil {
				return defaultStackConfig(), fmt.Errorf("write default config: %w", wErr)
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaultStackConfig(), fmt.Errorf("read config: %w", err)
	}
	cfg, parseErr := parseStackConfig(data)
	if parseErr != nil {
		return defaultStackConfig(), parseErr
	}
	return cfg, nil
}

// parseStackConfig parses TOML bytes and validates the modal definitions.
func parseStackConfig(data []byte) (stackConfigFile, error) {
	var cfg stackConfigFile
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaultStackConfig(), fmt.Errorf("parse modals.toml: %w", err)
	}
	if len(cfg.Modal) == 0 {
		return defaultStackConfig(), fmt.Errorf("no modals defined in config")
	}
	seen := make(map[string]bool)
	for i := range cfg.Modal {
		m := &cfg.Modal[i]
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return defaultStackConfig(), fmt.Errorf("modal[%d]: name is required", i)
		}
		if seen[m.Name] {
			return defaultStackConfig(), fmt.Errorf("modal[%d] %q: duplicate name", i, m.Name)
		}
		seen[m.Name] = true
		if m.Title == "" {
			m.Title = strings.ToUpper(m.Name[:1]) + m.Name[1:]
		}
		if m.Width < minModalWidth || m.Width > maxModalWidth {
			m.Width = 48
		}
		m.Accent = strings.ToLower(strings.TrimSpace(m.Accent))
	}
	return cfg, nil
}

// buildDefinition converts parsed modal definitions into the immutable
// definition the store validates opens against.
func buildDefinition(defs []modalDef) modal.StackDefinition {
	configs := make(map[modal.Name]modal.Config, len(defs))
	for _, d := range defs {
		configs[modal.Name(d.Name)] = modal.Config{
			Title:       d.Title,
			Width:       d.Width,
			Accent:      d.Accent,
			DimBackdrop: d.DimBackdrop,
		}
	}
	return modal.NewDefinition(configs)
}

// defaultStackConfig returns the built-in alert/confirm/prompt definitions.
func defaultStackConfig() stackConfigFile {
	return stackConfigFile{
		Modal: []modalDef{
			{Name: "alert", Title: "Alert", Width: 44, Accent: "yellow"},
			{Name: "confirm", Title: "Confirm", Width: 48, Accent: "red", DimBackdrop: true},
			{Name: "prompt", Title: "Prompt", Width: 52, Accent: "teal", DimBackdrop: true},
		},
	}
}
