package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. It may be missing.
const DefaultPath = "~/.goloop.yaml"

// Config holds the defaults of the goloop commands
type Config struct {
	// Iterations is the number of subdivision steps per run
	Iterations int `yaml:"iterations" toml:"iterations"`
	// Format is the STL encoding for output files, "binary" or "ascii"
	Format string `yaml:"format" toml:"format"`
	// WeldTolerance merges STL corners closer than this, 0 for exact
	WeldTolerance float64 `yaml:"weld_tolerance" toml:"weld_tolerance"`
	// Jobs bounds the number of files processed at once
	Jobs int `yaml:"jobs" toml:"jobs"`
	// Debounce delays watch mode reruns after a change
	Debounce Duration `yaml:"debounce" toml:"debounce"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Duration is a time.Duration written as "500ms" in config files
type Duration time.Duration

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Iterations: 1,
		Format:     "binary",
		Jobs:       runtime.NumCPU(),
		Debounce:   Duration(500 * time.Millisecond),
		LogLevel:   "warn",
	}
}

// Load reads a YAML or TOML file on top of the defaults. The format is
// chosen by extension (.toml, otherwise YAML). A leading ~ is expanded.
// If the file does not exist and optional is true the defaults are
// returned.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(expanded), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.WeldTolerance < 0 {
		return fmt.Errorf("weld_tolerance must not be negative, got %g", c.WeldTolerance)
	}
	switch strings.ToLower(c.Format) {
	case "binary", "ascii":
	default:
		return fmt.Errorf("format must be binary or ascii, got %q", c.Format)
	}
	return nil
}
