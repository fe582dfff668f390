// Package config loads the YAML settings shared by the mathgen binaries.
//
// A missing file is not an error; every field has a default. Durations are
// written as Go duration strings ("5s", "1m").
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/njchilds90/gomathgen"
	"gopkg.in/yaml.v3"
)

// Config is the top-level mathgen.yaml document.
type Config struct {
	Server     Server     `yaml:"server"`
	Generator  Generator  `yaml:"generator"`
	Simplifier Simplifier `yaml:"simplifier"`
	Store      Store      `yaml:"store"`
}

// Server holds HTTP listener settings.
type Server struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
}

// Generator bounds the trees built for problems.
type Generator struct {
	// Seed for the random source. Zero seeds from the clock.
	Seed         int64  `yaml:"seed"`
	MaxDepth     int    `yaml:"max_depth"`
	MaxMagnitude int64  `yaml:"max_magnitude"`
	MaxAttempts  int    `yaml:"max_attempts"`
	Variable     string `yaml:"variable"`
}

// Limits converts the settings for mathgen.NewGenerator.
func (g Generator) Limits() mathgen.Limits {
	return mathgen.Limits{
		MaxDepth:     g.MaxDepth,
		MaxMagnitude: g.MaxMagnitude,
		MaxAttempts:  g.MaxAttempts,
		Variable:     g.Variable,
	}
}

type Simplifier struct {
	MaxPasses int `yaml:"max_passes"`
}

// Store bounds the in-memory problem store of the server.
type Store struct {
	Capacity int `yaml:"capacity"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Generator: Generator{
			MaxDepth:     6,
			MaxMagnitude: 1000,
			MaxAttempts:  100,
			Variable:     "x",
		},
		Simplifier: Simplifier{MaxPasses: 8},
		Store:      Store{Capacity: 1024},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML content over the defaults.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(path string) error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%s: server.port %d out of range", path, c.Server.Port)
	case c.Server.MaxBodyBytes <= 0:
		return fmt.Errorf("%s: server.max_body_bytes must be positive", path)
	case c.Generator.MaxDepth <= 0:
		return fmt.Errorf("%s: generator.max_depth must be positive", path)
	case c.Generator.MaxMagnitude <= 0 || c.Generator.MaxMagnitude > 1<<31:
		// Products of two bounded values must stay inside int64.
		return fmt.Errorf("%s: generator.max_magnitude must be in (0, 2^31]", path)
	case c.Generator.MaxAttempts <= 0:
		return fmt.Errorf("%s: generator.max_attempts must be positive", path)
	case c.Generator.Variable == "":
		return fmt.Errorf("%s: generator.variable is required", path)
	case c.Simplifier.MaxPasses <= 0:
		return fmt.Errorf("%s: simplifier.max_passes must be positive", path)
	case c.Store.Capacity <= 0:
		return fmt.Errorf("%s: store.capacity must be positive", path)
	}
	return nil
}
