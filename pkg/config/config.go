// Package config loads the demo server configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is looked up in the working directory when no explicit
// path is given.
const DefaultFileName = "sessionsense.toml"

// Config captures the user-adjustable knobs of the demo server.
type Config struct {
	Server     ServerConfig    `toml:"server"`
	GeoIP      GeoIPConfig     `toml:"geoip"`
	Thresholds ThresholdConfig `toml:"thresholds"`
	Logging    LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the listen address of the ingest API.
type ServerConfig struct {
	Address string `toml:"address"`
}

// GeoIPConfig points at the optional MaxMind databases. Empty paths
// disable the environment cross-check heuristic.
type GeoIPConfig struct {
	CityDB string `toml:"city_db"`
	ASNDB  string `toml:"asn_db"`
}

// ThresholdConfig carries the fixed thresholds of the shipped heuristics.
// The defaults match the heuristic constructors; the file only needs the
// values being changed.
type ThresholdConfig struct {
	TypingYoungMaxMs   float64 `toml:"typing_young_max_ms"`
	TypingMidMaxMs     float64 `toml:"typing_mid_max_ms"`
	MinKeystrokes      int     `toml:"min_keystrokes"`
	MinPointerSamples  int     `toml:"min_pointer_samples"`
	MaxCorrectionRate  float64 `toml:"max_correction_rate"`
	MaxPointerCV       float64 `toml:"max_pointer_cv"`
	MaxKeyCV           float64 `toml:"max_key_cv"`
	AutomationStdDevMs float64 `toml:"automation_stddev_ms"`
	AutomationGridMax  float64 `toml:"automation_grid_max"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the baseline configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Address: "127.0.0.1:8457"},
		Thresholds: ThresholdConfig{
			TypingYoungMaxMs:   180,
			TypingMidMaxMs:     280,
			MinKeystrokes:      10,
			MinPointerSamples:  20,
			MaxCorrectionRate:  0.18,
			MaxPointerCV:       1.4,
			MaxKeyCV:           0.9,
			AutomationStdDevMs: 8,
			AutomationGridMax:  0.6,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads configuration from disk if present, otherwise returning
// defaults. A missing implicit file is tolerated; a missing explicit path
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, fmt.Errorf("config file %q not found", path)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
