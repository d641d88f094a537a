// Package config loads runtime settings from TIENDO_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. TIENDO_DB.
const Prefix = "TIENDO"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// DBPath defaults to ~/.tiendo/tiendo.db.
	DBPath    string `envconfig:"DB"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT"` // console, json, or empty to detect a TTY

	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// Today pins the reference date (DD/MM/YYYY) for reproducible renders.
	Today        string  `envconfig:"TODAY"`
	PixelsPerDay float64 `envconfig:"PIXELS_PER_DAY" default:"5"`
	PadDays      int     `envconfig:"PAD_DAYS" default:"30"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the layout engine cannot use.
func (c *Config) Validate() error {
	if c.Today != "" && !dates.Valid(c.Today) {
		return fmt.Errorf("%s_TODAY %q is not a DD/MM/YYYY date", Prefix, c.Today)
	}
	if c.PixelsPerDay <= 0 {
		return fmt.Errorf("%s_PIXELS_PER_DAY must be positive, got %v", Prefix, c.PixelsPerDay)
	}
	if c.PadDays < 0 {
		return fmt.Errorf("%s_PAD_DAYS must not be negative, got %d", Prefix, c.PadDays)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%s_LOG_FORMAT must be console or json, got %q", Prefix, c.LogFormat)
	}
	return nil
}

// ResolveDBPath returns DBPath, or the default under the user's home.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".tiendo", "tiendo.db"), nil
}

// Clock returns time.Now, or a fixed clock at noon UTC on Today when set.
func (c *Config) Clock() func() time.Time {
	if t, ok := dates.Parse(c.Today); ok {
		pinned := t.Add(12 * time.Hour)
		return func() time.Time { return pinned }
	}
	return time.Now
}

// PadDaysOrNone maps a configured zero pad to the timeline's "no padding"
// value, since zero means "use the default" there.
func (c *Config) PadDaysOrNone() int {
	if c.PadDays == 0 {
		return -1
	}
	return c.PadDays
}

// Defaults is the configuration with no environment applied.
func Defaults() *Config {
	return &Config{
		LogLevel:     "info",
		ListenAddr:   ":8080",
		PixelsPerDay: timeline.DefaultPixelsPerDay,
		PadDays:      timeline.DefaultPadDays,
	}
}
