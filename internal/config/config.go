package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI    UIConfig    `mapstructure:"ui"`
	Stack StackConfig `mapstructure:"stack"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AltScreen bool   `mapstructure:"alt_screen"`
	Accent    string `mapstructure:"accent"`
}

// StackConfig points at the modal definition file.
type StackConfig struct {
	DefinitionPath string `mapstructure:"definition_path"`
}

// Load reads configuration from file and env. Env var overrides use prefix MODALSTACK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.accent", "pink")
	v.SetDefault("stack.definition_path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MODALSTACK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "modalstack"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MODALSTACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by tooling and tests; the TUI itself only reads.
func Save(cfg Config) error {
	path := os.Getenv("MODALSTACK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "modalstack", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("ui.accent", cfg.UI.Accent)
	v.Set("stack.definition_path", cfg.Stack.DefinitionPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
