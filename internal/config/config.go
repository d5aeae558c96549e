package config

import (
	"errors"
	"fmt"
	"gdp-pipeline/internal/model"
	"gdp-pipeline/internal/pipeline"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given
const DefaultPath = "gdp-export.yaml"

// Config holds all exporter configuration.
type Config struct {
	// Files
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Input layout
	Delimiter     string `yaml:"delimiter"` // single character
	PreambleLines int    `yaml:"preamble_lines"`
	MinYear       int    `yaml:"min_year"`
	MaxYear       int    `yaml:"max_year"`

	Metadata MetadataConfig `yaml:"metadata"`

	// Run history database (SQLite); empty disables it
	HistoryDB string `yaml:"history_db"`

	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// MetadataConfig is copied into the metadata block of the document.
type MetadataConfig struct {
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
	Indicator   string `yaml:"indicator"`
	LastUpdated string `yaml:"last_updated"` // YYYY-MM-DD
}

// ServerConfig configures `gdp-export serve`.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	JobTimeout string `yaml:"job_timeout"` // e.g. "5m"
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the configuration of the World Bank GDP export.
func DefaultConfig() *Config {
	return &Config{
		Input:         pipeline.DefaultInputPath,
		Output:        pipeline.DefaultOutputPath,
		Delimiter:     ",",
		PreambleLines: pipeline.DefaultPreambleLines,
		MinYear:       pipeline.DefaultMinYear,
		MaxYear:       pipeline.DefaultMaxYear,
		Metadata: MetadataConfig{
			Description: pipeline.DefaultDescription,
			Source:      pipeline.DefaultSource,
			Indicator:   pipeline.DefaultIndicator,
			LastUpdated: pipeline.DefaultLastUpdated,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			JobTimeout: "5m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultPath, so the exporter runs without any config file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"GDP_INPUT", &c.Input},
		{"GDP_OUTPUT", &c.Output},
		{"GDP_HISTORY_DB", &c.HistoryDB},
		{"GDP_ADDR", &c.Server.Addr},
		{"GDP_JOB_TIMEOUT", &c.Server.JobTimeout},
		{"LOG_LEVEL", &c.Logging.Level},
		{"LOG_FORMAT", &c.Logging.Format},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
}

// Validate reports the first setting the exporter cannot work with.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if strings.ContainsAny(c.Delimiter, "\"\r\n") {
		return fmt.Errorf("delimiter %q is not allowed", c.Delimiter)
	}
	if c.PreambleLines < 0 {
		return fmt.Errorf("preamble_lines must not be negative, got %d", c.PreambleLines)
	}
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("min_year %d is after max_year %d", c.MinYear, c.MaxYear)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format: %s", c.Logging.Format)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// PipelineOptions converts the input layout and metadata settings.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		PreambleLines: c.PreambleLines,
		MinYear:       c.MinYear,
		MaxYear:       c.MaxYear,
		Delimiter:     c.DelimiterRune(),
		Metadata: model.Metadata{
			Description: c.Metadata.Description,
			Source:      c.Metadata.Source,
			Indicator:   c.Metadata.Indicator,
			LastUpdated: c.Metadata.LastUpdated,
		},
	}
}

// Job returns the configured input and output paths.
func (c *Config) Job() model.ExportJob {
	return model.ExportJob{InputPath: c.Input, OutputPath: c.Output}
}
