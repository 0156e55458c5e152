// Package config loads the resload configuration: where the source data
// lives, how its files are delimited, and the per-technology normalization
// divisors. The data root is an explicit configured path; nothing in the
// pipeline consults process-global state to find its inputs.
package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/enerscan/resload/internal/domain/series"
	"github.com/enerscan/resload/internal/ingest"
)

// Config is the top-level configuration structure.
type Config struct {
	DataRoot string    `yaml:"data_root" envconfig:"DATA_ROOT" validate:"required"`
	OutDir   string    `yaml:"out_dir" envconfig:"OUT_DIR" validate:"required"`
	CSV      CSVConfig `yaml:"csv"`

	// Normalization maps technology name to the divisor applied to raw
	// values during ingestion. Missing entries fall back to the defaults
	// (load 1000, renewables 100).
	Normalization map[string]float64 `yaml:"normalization" validate:"dive,gt=0"`
}

// CSVConfig describes the source file conventions.
type CSVConfig struct {
	Delimiter    string `yaml:"delimiter" envconfig:"CSV_DELIMITER" validate:"required,len=1"`
	DecimalComma bool   `yaml:"decimal_comma" envconfig:"CSV_DECIMAL_COMMA"`
}

// Default returns the configuration used when no file is given: data under
// ./data, artifacts under ./out, EU-style semicolon/decimal-comma files.
func Default() *Config {
	return &Config{
		DataRoot: "data",
		OutDir:   "out",
		CSV:      CSVConfig{Delimiter: ";", DecimalComma: true},
	}
}

// Load reads a YAML config file, applies RESLOAD_* environment overrides,
// and validates the result. An empty path yields Default() plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	if err := envconfig.Process("resload", cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.normalization(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IngestOptions translates the CSV section into loader options.
func (c *Config) IngestOptions() ingest.Options {
	delim, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return ingest.Options{Delimiter: delim, DecimalComma: c.CSV.DecimalComma}
}

// NewLoader builds the ingestion loader for this configuration.
func (c *Config) NewLoader() (*ingest.Loader, error) {
	divisors, err := c.normalization()
	if err != nil {
		return nil, err
	}
	return ingest.NewLoader(c.DataRoot, c.IngestOptions(), divisors), nil
}

func (c *Config) normalization() (ingest.Normalization, error) {
	divisors := ingest.DefaultNormalization()
	for name, divisor := range c.Normalization {
		tech, ok := series.ParseTechnology(name)
		if !ok {
			return nil, fmt.Errorf("normalization: unknown technology %q", name)
		}
		divisors[tech] = divisor
	}
	return divisors, nil
}
