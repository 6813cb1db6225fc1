package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
)

// Config holds all runtime configuration parameters
type Config struct {
	ListenAddr         string  `json:"listen_addr"`
	AnalyzerURL        string  `json:"analyzer_url"`
	AnalyzerTimeoutMs  int     `json:"analyzer_timeout_ms"`
	AnalyzerRatePerSec float64 `json:"analyzer_rate_per_sec"`
	Goal               float64 `json:"goal"`
	Mode               string  `json:"mode"`
	StrictFrontier     bool    `json:"strict_frontier"`
	Trailer            string  `json:"trailer"`
	DBPath             string  `json:"db_path"`
	MetricsPath        string  `json:"metrics_path"`
	HistoryLimit       int     `json:"history_limit"`
	ShutdownTimeoutMs  int     `json:"shutdown_timeout_ms"`
}

// LoadConfig reads and validates configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every field set to its default
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// SearchMode returns the parsed traversal mode
func (c *Config) SearchMode() search.Mode {
	mode, err := search.ParseMode(c.Mode)
	if err != nil {
		return search.DepthFirst
	}
	return mode
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":4567"
	}
	if cfg.AnalyzerURL == "" {
		cfg.AnalyzerURL = "http://www.dactyl.in/api/v1/dactyl"
	}
	if cfg.AnalyzerTimeoutMs == 0 {
		cfg.AnalyzerTimeoutMs = 5000
	}
	if cfg.AnalyzerRatePerSec == 0 {
		cfg.AnalyzerRatePerSec = 5
	}
	if cfg.Goal == 0 {
		cfg.Goal = 3
	}
	if cfg.Mode == "" {
		cfg.Mode = "dfs"
	}
	if cfg.Trailer == "" {
		cfg.Trailer = "HL3 confirmed."
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "confirmer.db"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "metrics.log"
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = 20
	}
	if cfg.ShutdownTimeoutMs == 0 {
		cfg.ShutdownTimeoutMs = 5000
	}
}

// validate checks that required fields are present and values are sensible
func validate(cfg *Config) error {
	if cfg.Goal < 0 {
		return fmt.Errorf("goal must be > 0")
	}
	if _, err := search.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if cfg.AnalyzerTimeoutMs < 100 {
		return fmt.Errorf("analyzer_timeout_ms must be >= 100")
	}
	if cfg.AnalyzerRatePerSec < 0 {
		return fmt.Errorf("analyzer_rate_per_sec must be >= 0")
	}
	if cfg.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be >= 1")
	}
	if cfg.ShutdownTimeoutMs < 0 {
		return fmt.Errorf("shutdown_timeout_ms must be >= 0")
	}
	return nil
}
