package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for valuescan.
type Config struct {
	Gemini  Gemini  `yaml:"gemini"`
	Scan    Scan    `yaml:"scan"`
	Logging Logging `yaml:"logging"`
}

// Gemini holds credentials and model selection for the generative query
// service.
type Gemini struct {
	APIKey          string `yaml:"api_key"`
	TextModel       string `yaml:"text_model"`   // search-grounded free-text queries
	ReportModel     string `yaml:"report_model"` // schema-constrained report extraction
	TimeoutSec      int    `yaml:"timeout_sec"`  // per-call timeout
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
	MaxAttempts     int    `yaml:"max_attempts"`
}

// Scan controls the multi-sector value scan.
type Scan struct {
	TopN      int `yaml:"top_n"`      // candidates kept after sorting
	PerSector int `yaml:"per_sector"` // records requested per sector query
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	return &Config{
		Gemini: Gemini{
			TextModel:       "gemini-2.5-flash",
			ReportModel:     "gemini-2.5-flash",
			TimeoutSec:      120,
			RateLimitPerMin: 10,
			MaxAttempts:     3,
		},
		Scan: Scan{
			TopN:      20,
			PerSector: 4,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML configuration file at the given path, parses it over
// the defaults, and then applies environment variable overrides. An empty
// path skips the file and yields defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}

	// GEMINI_API_KEY takes priority over GOOGLE_API_KEY (canonical name used
	// by the SDK).
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}

	if v := os.Getenv("VALUESCAN_TEXT_MODEL"); v != "" {
		cfg.Gemini.TextModel = v
	}

	if v := os.Getenv("VALUESCAN_REPORT_MODEL"); v != "" {
		cfg.Gemini.ReportModel = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
