// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// EnvAPIKey is the environment variable holding the Twelve Data API key.
const EnvAPIKey = "TWELVE_DATA_API_KEY"

// Config is the explicit configuration for an extraction run, constructed in
// the command layer and passed into the pipeline. Fields loadable from a JSON
// config file carry json tags; the dates and credential come only from the
// CLI and environment.
type Config struct {
	APIKey      string `json:"-" validate:"required"`
	BaseURL     string `json:"base_url,omitempty" validate:"omitempty,url"`
	StartDate   string `json:"-" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"-" validate:"required,datetime=2006-01-02"`
	Input       string `json:"input,omitempty"`
	OutDir      string `json:"out_dir,omitempty"`
	Limit       int    `json:"limit,omitempty" validate:"min=0"`
	Workers     int    `json:"workers,omitempty" validate:"min=1"`
	Debug       bool   `json:"debug,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
}

// Defaults returns the built-in defaults applied after config file and flag
// merging.
func Defaults() Config {
	return Config{
		BaseURL: "https://api.twelvedata.com",
		Input:   "symbols.csv",
		OutDir:  "output",
		Workers: 1,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks the merged configuration before any network call is made.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return fmt.Errorf("config error: %s", describeFirst(invalid))
		}
		return err
	}
	return nil
}

// describeFirst maps the first validation failure to a user-facing message.
func describeFirst(errs validator.ValidationErrors) string {
	e := errs[0]
	switch e.Field() {
	case "APIKey":
		return fmt.Sprintf("%s environment variable is required", EnvAPIKey)
	case "StartDate", "EndDate":
		return "dates must be in YYYY-MM-DD format"
	case "Workers":
		return "workers must be at least 1"
	case "Limit":
		return "limit must be non-negative"
	default:
		return fmt.Sprintf("invalid value for %s", e.Field())
	}
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. CLI flags overwrite config-file values before this is applied.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	return result
}
