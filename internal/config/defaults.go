package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Addr:           ":8080",
		DashboardAddr:  ":8501",
		ModelsDir:      "models",
		ModelsArchive:  "models.zip",
		StaticDir:      "static",
		MaxHorizon:     60,
		DefaultHorizon: 7,
		LogLevel:       "info",
		LogFormat:      "console",
		MaxBodyBytes:   1 << 20,
	}
}

// Merge overlays the non-zero fields of override onto base. A zero value
// cannot reset a field; CORSEnabled is the exception since it is a pointer.
func Merge(base, override Config) Config {
	out := base
	if override.Addr != "" {
		out.Addr = override.Addr
	}
	if override.DashboardAddr != "" {
		out.DashboardAddr = override.DashboardAddr
	}
	if override.ModelsDir != "" {
		out.ModelsDir = override.ModelsDir
	}
	if override.ModelsArchive != "" {
		out.ModelsArchive = override.ModelsArchive
	}
	if override.StaticDir != "" {
		out.StaticDir = override.StaticDir
	}
	if override.MaxHorizon > 0 {
		out.MaxHorizon = override.MaxHorizon
	}
	if override.DefaultHorizon > 0 {
		out.DefaultHorizon = override.DefaultHorizon
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		out.LogFormat = override.LogFormat
	}
	if override.MaxBodyBytes > 0 {
		out.MaxBodyBytes = override.MaxBodyBytes
	}
	if override.RateLimitRPS > 0 {
		out.RateLimitRPS = override.RateLimitRPS
	}
	if override.RateLimitBurst > 0 {
		out.RateLimitBurst = override.RateLimitBurst
	}
	if override.ForecastTimeoutSeconds > 0 {
		out.ForecastTimeoutSeconds = override.ForecastTimeoutSeconds
	}
	if override.CORSEnabled != nil {
		enabled := *override.CORSEnabled
		out.CORSEnabled = &enabled
	}
	if len(override.CORSOrigins) > 0 {
		out.CORSOrigins = append([]string(nil), override.CORSOrigins...)
	}
	return out
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env") into
// the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// FromEnv reads AQICAST_* variables. Unset variables leave fields zero.
func FromEnv() (Config, error) {
	var cfg Config
	cfg.Addr = os.Getenv("AQICAST_ADDR")
	cfg.DashboardAddr = os.Getenv("AQICAST_DASHBOARD_ADDR")
	cfg.ModelsDir = os.Getenv("AQICAST_MODELS_DIR")
	cfg.ModelsArchive = os.Getenv("AQICAST_MODELS_ARCHIVE")
	cfg.StaticDir = os.Getenv("AQICAST_STATIC_DIR")
	cfg.LogLevel = os.Getenv("AQICAST_LOG_LEVEL")
	cfg.LogFormat = os.Getenv("AQICAST_LOG_FORMAT")
	var err error
	if cfg.MaxHorizon, err = envInt("AQICAST_MAX_HORIZON"); err != nil {
		return cfg, err
	}
	if cfg.DefaultHorizon, err = envInt("AQICAST_DEFAULT_HORIZON"); err != nil {
		return cfg, err
	}
	if cfg.RateLimitBurst, err = envInt("AQICAST_RATE_LIMIT_BURST"); err != nil {
		return cfg, err
	}
	if v := os.Getenv("AQICAST_MAX_BODY_BYTES"); v != "" {
		if cfg.MaxBodyBytes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("invalid AQICAST_MAX_BODY_BYTES: %w", err)
		}
	}
	if v := os.Getenv("AQICAST_FORECAST_TIMEOUT_SECONDS"); v != "" {
		if cfg.ForecastTimeoutSeconds, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("invalid AQICAST_FORECAST_TIMEOUT_SECONDS: %w", err)
		}
	}
	if v := os.Getenv("AQICAST_RATE_LIMIT_RPS"); v != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, fmt.Errorf("invalid AQICAST_RATE_LIMIT_RPS: %w", err)
		}
	}
	if v := os.Getenv("AQICAST_CORS_ENABLED"); v != "" {
		s := strings.ToLower(strings.TrimSpace(v))
		enabled := s == "1" || s == "true" || s == "yes"
		cfg.CORSEnabled = &enabled
	}
	if v := os.Getenv("AQICAST_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = SplitCSV(v)
	}
	return cfg, nil
}

// Validate rejects combinations the front-ends cannot serve.
func (c Config) Validate() error {
	if c.MaxHorizon < 1 {
		return fmt.Errorf("max_horizon must be at least 1, got %d", c.MaxHorizon)
	}
	if c.DefaultHorizon < 1 || c.DefaultHorizon > c.MaxHorizon {
		return fmt.Errorf("default_horizon must be between 1 and %d, got %d", c.MaxHorizon, c.DefaultHorizon)
	}
	if c.ForecastTimeoutSeconds < 0 {
		return fmt.Errorf("forecast_timeout_seconds must not be negative")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must not be negative")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// CORS reports whether CORS is enabled for the JSON API.
func (c Config) CORS() bool { return c.CORSEnabled != nil && *c.CORSEnabled }

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
