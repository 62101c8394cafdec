// Package config loads cube-sniper settings from an optional YAML file.
//
// Missing keys fall back to defaults, and Validate reports every invalid
// value at once rather than stopping at the first.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/cube-sniper/internal/logger"
	"github.com/pfrederiksen/cube-sniper/internal/scraper"
)

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "CUBE_SNIPER_CONFIG"

const (
	DefaultOrigin      = scraper.DefaultOrigin
	DefaultSource      = string(scraper.SourceAPI)
	DefaultUserAgent   = scraper.UserAgent
	DefaultTimeout     = scraper.Timeout
	DefaultRadiusMiles = 150.0
	DefaultLogLevel    = "warn"
)

// Config holds all runtime settings
type Config struct {
	// Origin is the upstream site, joined with relative competition paths.
	Origin string `yaml:"origin"`

	// Source selects the ingestion strategy: "api" or "legacy".
	Source string `yaml:"source"`

	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`

	// DefaultRadiusMiles is used when no radius argument is given.
	DefaultRadiusMiles float64 `yaml:"default_radius_miles"`

	LogLevel string `yaml:"log_level"`

	// MetricsTextfile, when set, receives Prometheus metrics after each run.
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Default returns a Config with every default applied
func Default() *Config {
	return &Config{
		Origin:             DefaultOrigin,
		Source:             DefaultSource,
		UserAgent:          DefaultUserAgent,
		Timeout:            DefaultTimeout,
		DefaultRadiusMiles: DefaultRadiusMiles,
		LogLevel:           DefaultLogLevel,
	}
}

// Load reads the YAML file at path and applies defaults. An empty path falls
// back to $CUBE_SNIPER_CONFIG, and to pure defaults when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Keys absent from the file keep their defaults; an explicit 0 radius survives
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if c.Origin == "" {
		c.Origin = DefaultOrigin
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	return c, nil
}

// Validate returns an error describing every invalid setting, or nil
func (c *Config) Validate() error {
	var err error

	if u, perr := url.Parse(c.Origin); perr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("origin %q must be an absolute URL", c.Origin))
	}
	if _, serr := scraper.ParseSource(c.Source); serr != nil {
		err = multierr.Append(err, serr)
	}
	if c.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("timeout %s must not be negative", c.Timeout))
	}
	if c.DefaultRadiusMiles < 0 {
		err = multierr.Append(err, errors.New("default_radius_miles must not be negative"))
	}
	if _, lerr := logger.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, lerr)
	}

	return err
}
