// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/jonathan/ats-scanner/internal/ingestion"
)

// Output formats for the scan report.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultPort is the web server port when none is configured.
const DefaultPort = 8080

// DefaultConcurrency bounds how many resumes are analyzed at once.
const DefaultConcurrency = 4

// EnvPrefix prefixes environment overrides, e.g. ATS_PORT.
const EnvPrefix = "ATS_"

// Config represents the scanner configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resumes        []string `json:"resumes,omitempty" yaml:"resumes,omitempty"`                 // Resume paths, URLs or s3:// references
	Job            string   `json:"job,omitempty" yaml:"job,omitempty"`                         // Path to job description text file
	JobURL         string   `json:"job_url,omitempty" yaml:"job_url,omitempty"`                 // URL to fetch job posting from
	VocabularyFile string   `json:"vocabulary_file,omitempty" yaml:"vocabulary_file,omitempty"` // Replaces the built-in skill vocabulary

	// Outputs
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=text json"` // Report format
	Out    string `json:"out,omitempty" yaml:"out,omitempty"`                                            // Write report to file instead of stdout
	XLSX   string `json:"xlsx,omitempty" yaml:"xlsx,omitempty"`                                          // Also export results to an Excel workbook

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Behavior
	Concurrency int                `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
	UseBrowser  bool               `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose     bool               `json:"verbose,omitempty" yaml:"verbose,omitempty"`         // Print detailed debug information
	S3          ingestion.S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Format:      FormatText,
		Port:        DefaultPort,
		Concurrency: DefaultConcurrency,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
// (.yaml and .yml are YAML; everything else is JSON).
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from ATS_* environment variables. Unparseable
// numeric or boolean values are reported rather than ignored.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPrefix + "JOB"); v != "" {
		c.Job = v
	}
	if v := os.Getenv(EnvPrefix + "JOB_URL"); v != "" {
		c.JobURL = v
	}
	if v := os.Getenv(EnvPrefix + "VOCABULARY_FILE"); v != "" {
		c.VocabularyFile = v
	}
	if v := os.Getenv(EnvPrefix + "FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvPrefix + "PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %sPORT must be an integer: %w", EnvPrefix, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvPrefix + "CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %sCONCURRENCY must be an integer: %w", EnvPrefix, err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv(EnvPrefix + "USE_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: %sUSE_BROWSER must be a boolean: %w", EnvPrefix, err)
		}
		c.UseBrowser = b
	}
	if v := os.Getenv(EnvPrefix + "S3_ENDPOINT"); v != "" {
		c.S3.Endpoint = v
	}
	if v := os.Getenv(EnvPrefix + "S3_REGION"); v != "" {
		c.S3.Region = v
	}
	if v := os.Getenv(EnvPrefix + "S3_ACCESS_KEY"); v != "" {
		c.S3.AccessKey = v
	}
	if v := os.Getenv(EnvPrefix + "S3_SECRET_KEY"); v != "" {
		c.S3.SecretKey = v
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.VocabularyFile != "" {
		if _, err := os.Stat(c.VocabularyFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.VocabularyFile == "" {
		result.VocabularyFile = defaults.VocabularyFile
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.XLSX == "" {
		result.XLSX = defaults.XLSX
	}
	if result.S3 == (ingestion.S3Config{}) {
		result.S3 = defaults.S3
	}

	// Slices: use default if empty
	if len(result.Resumes) == 0 {
		result.Resumes = append([]string(nil), defaults.Resumes...)
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
