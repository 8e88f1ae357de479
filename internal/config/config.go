// Package config loads the YAML configuration of the demo program.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flavioheleno/st7565"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Config describes the display wiring and startup settings.
type Config struct {
	// Model is the display module: DOGM128, DOGM132 or DOGL128.
	Model string `yaml:"model"`

	// SPI is the SPI port name passed to spireg.Open (empty for the default).
	SPI string `yaml:"spi"`
	// Hz is the SPI clock, e.g. "20MHz".
	Hz string `yaml:"hz"`

	// GPIO pin names, resolved with gpioreg.ByName. CS and RST are optional.
	DC  string `yaml:"dc"`
	CS  string `yaml:"cs,omitempty"`
	RST string `yaml:"rst,omitempty"`

	// TopView starts the display rotated by 180°.
	TopView bool `yaml:"topview"`
	// Contrast overrides the model default when in 1-63.
	Contrast int `yaml:"contrast"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns an in-memory default configuration.
func Default() *Config {
	return &Config{
		Model:    "DOGM128",
		Hz:       "20MHz",
		DC:       "GPIO25",
		LogLevel: "info",
	}
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	d := Default()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Hz == "" {
		c.Hz = d.Hz
	}
	if c.DC == "" {
		c.DC = d.DC
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate checks that every field can be converted.
func (c *Config) Validate() error {
	if _, err := c.DisplayModel(); err != nil {
		return err
	}
	if _, err := c.Frequency(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Contrast < 0 || c.Contrast > 63 {
		return fmt.Errorf("config: contrast %d out of range 0-63", c.Contrast)
	}
	return nil
}

// DisplayModel parses Model.
func (c *Config) DisplayModel() (st7565.Model, error) {
	return st7565.ParseModel(c.Model)
}

// Frequency parses Hz.
func (c *Config) Frequency() (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(c.Hz); err != nil {
		return 0, fmt.Errorf("config: invalid hz %q: %w", c.Hz, err)
	}
	return f, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Load reads the configuration at path. A missing file yields the default
// configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed. The file
// is written to a temporary file first and renamed over path.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".st7565-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
