package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for both front-ends.
// Zero values mean "unspecified" and are replaced by Defaults in Merge.
// CORSEnabled is a pointer so a later layer can switch CORS off again.
type Config struct {
	Addr                   string   `json:"addr" yaml:"addr" toml:"addr"`
	DashboardAddr          string   `json:"dashboard_addr" yaml:"dashboard_addr" toml:"dashboard_addr"`
	ModelsDir              string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	ModelsArchive          string   `json:"models_archive" yaml:"models_archive" toml:"models_archive"`
	StaticDir              string   `json:"static_dir" yaml:"static_dir" toml:"static_dir"`
	MaxHorizon             int      `json:"max_horizon" yaml:"max_horizon" toml:"max_horizon"`
	DefaultHorizon         int      `json:"default_horizon" yaml:"default_horizon" toml:"default_horizon"`
	LogLevel               string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat              string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes           int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	ForecastTimeoutSeconds int64    `json:"forecast_timeout_seconds" yaml:"forecast_timeout_seconds" toml:"forecast_timeout_seconds"`
	RateLimitRPS           float64  `json:"rate_limit_rps" yaml:"rate_limit_rps" toml:"rate_limit_rps"`
	RateLimitBurst         int      `json:"rate_limit_burst" yaml:"rate_limit_burst" toml:"rate_limit_burst"`
	CORSEnabled            *bool    `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins            []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
