// Package config loads the settings of a wts run.
//
// Settings come, from lowest to highest precedence, from the defaults, an
// optional YAML file, and WTS_* environment variables. Commands apply their
// flags on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/wts"
	"github.com/etnz/wts/census"
	"github.com/etnz/wts/pipeline"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of the environment variables, e.g. WTS_RAW_DIR.
const EnvPrefix = "WTS"

// Config is the complete configuration of a run.
type Config struct {
	RawDir       string       `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	ProcessedDir string       `yaml:"processed_dir" envconfig:"PROCESSED_DIR" validate:"required"`
	ChartsDir    string       `yaml:"charts_dir" envconfig:"CHARTS_DIR" validate:"required"`
	Output       string       `yaml:"output" envconfig:"OUTPUT" validate:"required"`
	MetricsFile  string       `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Sales        SeriesConfig `yaml:"sales" envconfig:"SALES"`
	Inventories  SeriesConfig `yaml:"inventories" envconfig:"INVENTORIES"`
}

// SeriesConfig locates one census extract in RawDir.
type SeriesConfig struct {
	File   string `yaml:"file" envconfig:"FILE" validate:"required"`
	Column string `yaml:"column" envconfig:"COLUMN" validate:"required"`
	Name   string `yaml:"name" envconfig:"NAME" validate:"required"`
}

// Default returns the conventional data/raw, data/processed and charts layout.
func Default() Config {
	return Config{
		RawDir:       filepath.Join("data", "raw"),
		ProcessedDir: filepath.Join("data", "processed"),
		ChartsDir:    "charts",
		Output:       "merged_wts_data_nominal.csv",
		Sales: SeriesConfig{
			File:   "Sales_Adjusted.csv",
			Column: census.DefaultColumn,
			Name:   wts.DefaultSalesName,
		},
		Inventories: SeriesConfig{
			File:   "Inventories_Adjusted.csv",
			Column: census.DefaultColumn,
			Name:   wts.DefaultInventoriesName,
		},
	}
}

// Load returns the default configuration, overridden by the YAML file at path
// (if path is not empty) and by the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}
	// Fields have no default tag: unset variables leave the current value.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFile overrides c with the values present in the YAML file.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}
	var errs error
	for _, fe := range invalid {
		errs = errors.Join(errs, fmt.Errorf("missing %s", fe.Namespace()))
	}
	return errs
}

// OutputPath returns the path of the merged dataset.
func (c *Config) OutputPath() string { return filepath.Join(c.ProcessedDir, c.Output) }

// ChartsPath returns the path of the charts workbook.
func (c *Config) ChartsPath() string { return filepath.Join(c.ChartsDir, "charts.xlsx") }

// Pipeline resolves the configuration into the paths used by a pipeline run.
func (c *Config) Pipeline() pipeline.Config {
	source := func(s SeriesConfig) census.Source {
		return census.Source{Path: filepath.Join(c.RawDir, s.File), Column: s.Column, Name: s.Name}
	}
	return pipeline.Config{
		Sales:       source(c.Sales),
		Inventories: source(c.Inventories),
		Output:      c.OutputPath(),
	}
}

// EnsureDirs creates the processed and charts directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.ProcessedDir, c.ChartsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
