// Package config loads and saves tally's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/budget"
)

// Config holds all tally configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Alerts     AlertsConfig     `toml:"alerts"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds the starting budget.
type GeneralConfig struct {
	Budget Amount `toml:"budget" env:"TALLY_BUDGET"`
}

// Amount is a budget amount kept as decimal text, written to the file as a
// TOML string. Bare TOML numbers are accepted on load.
type Amount string

// UnmarshalText accepts anything budget.ParseAmount does.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := budget.ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = Amount(v.String())
	return nil
}

// Decimal parses the amount.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return budget.ParseAmount(string(a))
}

// AlertsConfig controls the over-budget warning.
type AlertsConfig struct {
	Mode string `toml:"mode" env:"TALLY_WARN_MODE"` // "every" or "crossing"
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"TALLY_THEME"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" env:"TALLY_LOG_LEVEL"`
	File  string `toml:"file,omitempty" env:"TALLY_LOG_FILE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Budget: Amount(budget.DefaultBudget.String()),
		},
		Alerts: AlertsConfig{
			Mode: budget.WarnEvery.String(),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// CacheDir returns the XDG-compliant cache directory, used for log files.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "tally")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file and applies environment overrides. Missing
// files are not an error; defaults are used instead.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config location
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be silently defaulted.
func (c Config) Validate() error {
	if _, err := c.General.Budget.Decimal(); err != nil {
		return fmt.Errorf("general.budget: %w", err)
	}
	if _, err := budget.ParseWarnMode(c.Alerts.Mode); err != nil {
		return fmt.Errorf("alerts.mode: %w", err)
	}
	return nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// StartingBudget returns the configured budget, DefaultBudget when invalid.
func (c Config) StartingBudget() decimal.Decimal {
	v, err := c.General.Budget.Decimal()
	if err != nil {
		return budget.DefaultBudget
	}
	return v
}

// WarnMode returns the parsed alert mode, WarnEvery when invalid.
func (c Config) WarnMode() budget.WarnMode {
	m, _ := budget.ParseWarnMode(c.Alerts.Mode)
	return m
}
