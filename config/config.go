// Package config loads plumbgrid settings from YAML: the coordinate scale,
// the tank fixture catalog and logging.
//
// Unknown keys are rejected so that typos surface as errors instead of
// silently falling back to defaults. Missing sections keep their defaults.
//
//	grid:
//	  cells_per_region: 180
//	  sub_units_per_cell: 2
//	  tiles_per_sub_unit: 12
//	fixtures:
//	  - id: f_standing_tank_plumbed
//	    capacity_ml: 240000
//	logging:
//	  level: info     # debug | info | warn | error
//	  format: text    # text | json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/plumbing"
	"github.com/katalvlaran/plumbgrid/world"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root of a configuration file.
type Config struct {
	Grid     coord.Scale `yaml:"grid"`
	Fixtures []Fixture  `yaml:"fixtures"`
	Logging  Logging    `yaml:"logging"`
}

// Fixture declares one tank fixture type.
type Fixture struct {
	ID       string `yaml:"id"`
	Capacity int64  `yaml:"capacity_ml"`
}

// Logging selects the diagnostic level and encoding.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid:     coord.DefaultScale(),
		Fixtures: []Fixture{{ID: world.DefaultTankFixture, Capacity: 240000}},
		Logging:  Logging{Level: "info", Format: "text"},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks scale factors, fixture declarations and logging values.
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: grid: %v", ErrInvalidConfig, err)
	}
	if len(c.Fixtures) == 0 {
		return fmt.Errorf("%w: at least one fixture is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Fixtures))
	for i, f := range c.Fixtures {
		switch {
		case f.ID == "":
			return fmt.Errorf("%w: fixtures[%d]: id is empty", ErrInvalidConfig, i)
		case f.Capacity <= 0:
			return fmt.Errorf("%w: fixtures[%d] %s: capacity_ml must be positive", ErrInvalidConfig, i, f.ID)
		case seen[f.ID]:
			return fmt.Errorf("%w: fixtures[%d]: duplicate id %s", ErrInvalidConfig, i, f.ID)
		}
		seen[f.ID] = true
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q must be text or json", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Catalog builds the fixture catalog.
func (c *Config) Catalog() world.FixtureCatalog {
	cat := make(world.FixtureCatalog, len(c.Fixtures))
	for _, f := range c.Fixtures {
		cat[f.ID] = world.Volume(f.Capacity)
	}
	return cat
}

// Logger builds a slog.Logger writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// NetworkOptions turns the configuration into plumbing options, logging
// to logw.
func (c *Config) NetworkOptions(logw io.Writer) ([]plumbing.Option, error) {
	logger, err := c.Logger(logw)
	if err != nil {
		return nil, err
	}
	return []plumbing.Option{
		plumbing.WithScale(c.Grid),
		plumbing.WithCatalog(c.Catalog()),
		plumbing.WithLogger(logger),
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, s)
}
