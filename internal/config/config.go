// Package config loads goliq settings from YAML, .env files and GOLIQ_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/goliq/internal/liquefaction"
	"github.com/alexiusacademia/goliq/internal/soil"
)

// Config holds all goliq configuration
type Config struct {
	Method           string                 `yaml:"method"`
	JRA              liquefaction.RawParams `yaml:"jra"`
	GroundWaterLevel *float64               `yaml:"ground_water_level,omitempty"` // overrides the logged level
	SoilTable        string                 `yaml:"soil_table,omitempty"`         // YAML property table, empty for built-in

	Cache   CacheConfig   `yaml:"cache"`
	Batch   BatchConfig   `yaml:"batch"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// CacheConfig configures the parsed-borehole cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// BatchConfig configures directory runs
type BatchConfig struct {
	Jobs    int    `yaml:"jobs"`
	Pattern string `yaml:"pattern"`
}

// ExportConfig configures report output
type ExportConfig struct {
	PDFFont string `yaml:"pdf_font,omitempty"` // TrueType font for Japanese text in PDF reports
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	year, level, eqType, ground := 2017, 2, 1, 1
	given, khgl, region := false, 0.2, "C"

	return &Config{
		Method: liquefaction.MethodJRA,
		JRA: liquefaction.RawParams{
			Year:          &year,
			EQLevel:       &level,
			EQType:        &eqType,
			IsGivenKhgl:   &given,
			Khgl:          &khgl,
			RegionalClass: &region,
			GroundType:    &ground,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    DefaultCachePath(),
		},
		Batch: BatchConfig{
			Jobs:    runtime.NumCPU(),
			Pattern: "*.XML",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultCachePath returns the cache database location under the user cache directory
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".goliq", "cache.db")
	}
	return filepath.Join(dir, "goliq", "cache.db")
}

// Load loads configuration from a YAML file. A missing file gives the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are skipped; variables already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies GOLIQ_* environment variables.
// GOLIQ_KHGL also sets is_given_khgl.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GOLIQ_METHOD"); v != "" {
		c.Method = v
	}

	ints := []struct {
		env string
		dst **int
	}{
		{"GOLIQ_YEAR", &c.JRA.Year},
		{"GOLIQ_EQ_LEVEL", &c.JRA.EQLevel},
		{"GOLIQ_EQ_TYPE", &c.JRA.EQType},
		{"GOLIQ_GROUND_TYPE", &c.JRA.GroundType},
	}
	for _, e := range ints {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", e.env, v, err)
		}
		*e.dst = &n
	}

	if v := os.Getenv("GOLIQ_REGIONAL_CLASS"); v != "" {
		rc := strings.ToUpper(strings.TrimSpace(v))
		c.JRA.RegionalClass = &rc
	}
	if v := os.Getenv("GOLIQ_KHGL"); v != "" {
		k, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid GOLIQ_KHGL %q: %w", v, err)
		}
		given := true
		c.JRA.Khgl = &k
		c.JRA.IsGivenKhgl = &given
	}
	if v := os.Getenv("GOLIQ_GWL"); v != "" {
		gwl, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid GOLIQ_GWL %q: %w", v, err)
		}
		c.GroundWaterLevel = &gwl
	}

	if v := os.Getenv("GOLIQ_SOIL_TABLE"); v != "" {
		c.SoilTable = v
	}
	if v := os.Getenv("GOLIQ_CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("GOLIQ_CACHE_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GOLIQ_CACHE_ENABLED %q: %w", v, err)
		}
		c.Cache.Enabled = b
	}
	if v := os.Getenv("GOLIQ_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GOLIQ_JOBS %q: %w", v, err)
		}
		c.Batch.Jobs = n
	}
	if v := os.Getenv("GOLIQ_PDF_FONT"); v != "" {
		c.Export.PDFFont = v
	}
	if v := os.Getenv("GOLIQ_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// PropertyTable returns the configured soil property table
func (c *Config) PropertyTable() (*soil.Table, error) {
	if c.SoilTable == "" {
		return soil.DefaultTable(), nil
	}
	return soil.LoadTable(c.SoilTable)
}

// Validate checks settings that are not method parameters. Method parameters
// are validated when the pipeline is built.
func (c *Config) Validate() error {
	if c.Method == "" {
		return fmt.Errorf("method is not set")
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("batch.jobs must not be negative, got %d", c.Batch.Jobs)
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when the cache is enabled")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}
