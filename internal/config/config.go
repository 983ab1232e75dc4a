// Package config handles simulator configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config carries the environment settings a simulated store evaluates
// queries under.
type Config struct {
	// Timezone is the IANA zone relative-date operators resolve in.
	// Empty means the host-local zone; that fallback is resolved once at
	// store construction, not per query.
	Timezone string `toml:"timezone"`

	// FiscalStartMonth is the month fiscal years begin in, 1 through 12.
	// Zero means April.
	FiscalStartMonth int `toml:"fiscal_start_month"`

	// Metadata is the path of the CUE entity metadata file.
	Metadata string `toml:"metadata"`

	// LogLevel selects slog verbosity: debug, info, warn or error.
	// Empty means info.
	LogLevel string `toml:"log_level"`
}

// Load reads configuration from a TOML file. A missing file yields the
// zero config rather than an error, matching the simulator's
// everything-has-a-default posture.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific path, failing when the
// file is absent or malformed.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// Validate checks field ranges and that the zone resolves.
func (c *Config) Validate() error {
	if c.FiscalStartMonth < 0 || c.FiscalStartMonth > 12 {
		return fmt.Errorf("fiscal_start_month %d out of range 1-12", c.FiscalStartMonth)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
		}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// FiscalStart resolves the configured month, defaulting to April.
func (c *Config) FiscalStart() time.Month {
	if c.FiscalStartMonth == 0 {
		return time.April
	}
	return time.Month(c.FiscalStartMonth)
}

// Location resolves the configured timezone, defaulting to the host's
// local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
