package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aqicast/internal/config"
	"aqicast/internal/forecast"
	"aqicast/internal/registry"
)

// app carries the resolved configuration and logger to subcommands.
type app struct {
	cfg config.Config
	log zerolog.Logger
}

func buildRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "aqicast",
		Short:         "Serve per-city AQI forecasts from pre-trained models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.String("env-file", ".env", "dotenv file loaded before AQICAST_* variables are read")
	pf.String("models-dir", "", "Directory holding <City>_AutoARIMA.pkl artifacts")
	pf.String("static-dir", "", "Directory for static assets; charts go to <static-dir>/plots")
	pf.Int("max-horizon", 0, "Largest accepted number of forecast days")
	pf.String("log-level", "", "Log level: debug|info|warn|error")
	pf.String("log-format", "", "Log format: console|json")
	pf.Int64("forecast-timeout", 0, "Seconds a single forecast may run before it is cancelled (0 = no limit)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		a.cfg, a.log = cfg, logger
		return nil
	}

	root.AddCommand(
		newServeCmd(a),
		newDashboardCmd(a),
		newCitiesCmd(a),
		newForecastCmd(a),
		newVersionCmd(),
	)
	return root
}

// resolveConfig layers defaults, the config file, AQICAST_* variables and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg := config.Defaults()
	if path, _ := flags.GetString("config"); path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.Merge(cfg, envCfg)

	var over config.Config
	if flags.Changed("models-dir") {
		over.ModelsDir, _ = flags.GetString("models-dir")
	}
	if flags.Changed("static-dir") {
		over.StaticDir, _ = flags.GetString("static-dir")
	}
	if flags.Changed("max-horizon") {
		over.MaxHorizon, _ = flags.GetInt("max-horizon")
	}
	if flags.Changed("log-level") {
		over.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		over.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("forecast-timeout") {
		over.ForecastTimeoutSeconds, _ = flags.GetInt64("forecast-timeout")
	}
	if flags.Changed("addr") {
		addr, _ := flags.GetString("addr")
		if cmd.Name() == "dashboard" {
			over.DashboardAddr = addr
		} else {
			over.Addr = addr
		}
	}
	if flags.Changed("models-archive") {
		over.ModelsArchive, _ = flags.GetString("models-archive")
	}
	if flags.Changed("rate-limit-rps") {
		over.RateLimitRPS, _ = flags.GetFloat64("rate-limit-rps")
	}
	if flags.Changed("rate-limit-burst") {
		over.RateLimitBurst, _ = flags.GetInt("rate-limit-burst")
	}
	if flags.Changed("cors-origins") {
		origins, _ := flags.GetString("cors-origins")
		over.CORSOrigins = config.SplitCSV(origins)
		enabled := len(over.CORSOrigins) > 0
		over.CORSEnabled = &enabled
	}
	cfg = config.Merge(cfg, over)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// newService opens the models directory and builds the forecast service.
func (a *app) newService() (*forecast.Service, error) {
	store, err := registry.Open(a.cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("open models dir: %w", err)
	}
	svc := forecast.New(forecast.Config{
		Loader:     store,
		MaxHorizon: a.cfg.MaxHorizon,
		Events:     forecast.LogPublisher{Logger: a.log.With().Str("component", "forecast").Logger()},
	})
	if !svc.Ready() {
		a.log.Warn().Str("models_dir", store.Dir()).Msg("no model artifacts found")
	}
	return svc, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		// Skip config resolution; version must work with a broken config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "aqicast", version)
			return nil
		},
	}
}
