package internal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the static application configuration, loaded once at startup.
// Everything here is fixed for the lifetime of the process; the dynamic user
// state (range, alert radius, rotation) lives in Settings instead.
type Config struct {
	FeedURL       string        `yaml:"feed_url"`
	ObserverLat   float64       `yaml:"observer_lat"`
	ObserverLon   float64       `yaml:"observer_lon"`
	SettingsPath  string        `yaml:"settings_path"`
	FetchInterval time.Duration `yaml:"fetch_interval"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	SweepPeriod   time.Duration `yaml:"sweep_period"`
	BeamWidthDeg  float64       `yaml:"beam_width_deg"`
	FadeWindow    time.Duration `yaml:"fade_window"`
}

// DefaultConfig returns the built-in configuration: a local dump1090 on its
// usual port, an observer in the Vale of York and the stock sweep timing.
func DefaultConfig() Config {
	return Config{
		FeedURL:       "http://127.0.0.1:8080/data/aircraft.json",
		ObserverLat:   54.0,
		ObserverLon:   -1.0,
		SettingsPath:  "skysweep.settings",
		FetchInterval: 5 * time.Second,
		FrameInterval: 40 * time.Millisecond,
		SweepPeriod:   4 * time.Second,
		BeamWidthDeg:  12.0,
		FadeWindow:    10 * time.Second,
	}
}

// Observer returns the configured observer position.
func (c Config) Observer() Coordinates {
	return NewCoordinates(c.ObserverLat, c.ObserverLon)
}

// LoadConfig reads a YAML configuration file and fills in defaults for
// omitted values. An empty path yields the defaults without touching disk.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("config: feed_url is required")
	}
	if c.ObserverLat < -90 || c.ObserverLat > 90 {
		return fmt.Errorf("config: observer_lat %v out of range", c.ObserverLat)
	}
	if c.ObserverLon < -180 || c.ObserverLon > 180 {
		return fmt.Errorf("config: observer_lon %v out of range", c.ObserverLon)
	}
	if c.FetchInterval <= 0 || c.FrameInterval <= 0 || c.SweepPeriod <= 0 || c.FadeWindow <= 0 {
		return fmt.Errorf("config: intervals must be positive")
	}
	if c.BeamWidthDeg <= 0 || c.BeamWidthDeg > 180 {
		return fmt.Errorf("config: beam_width_deg %v out of range", c.BeamWidthDeg)
	}

	return nil
}
