package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aqicast/internal/chart"
	"aqicast/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the forecast web form and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}
			saver, err := chart.NewSaver(a.cfg.StaticDir, chart.Options{})
			if err != nil {
				return err
			}
			configureHTTP(a)
			if a.cfg.CORS() {
				httpapi.SetCORSOptions(true, a.cfg.CORSOrigins, []string{"GET", "POST", "OPTIONS"}, []string{"Content-Type"})
			}
			mux := httpapi.NewMux(svc, saver, a.cfg.DefaultHorizon)
			return listenAndServe(cmd.Context(), a.log, a.cfg.Addr, mux)
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address, e.g. :8080 (defaults AQICAST_ADDR or :8080)")
	cmd.Flags().Float64("rate-limit-rps", 0, "Forecast requests per second across all clients (0 = unlimited)")
	cmd.Flags().Int("rate-limit-burst", 0, "Burst size for the forecast rate limit")
	cmd.Flags().String("cors-origins", "", "Comma-separated allowed CORS origins for the JSON API (enables CORS)")
	return cmd
}

// configureHTTP applies the shared HTTP-layer settings used by both front-ends.
func configureHTTP(a *app) {
	httpapi.SetLogger(a.log.With().Str("component", "http").Logger())
	httpapi.SetRequestLogLevel(a.cfg.LogLevel)
	httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
	httpapi.SetRateLimit(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)
	httpapi.SetForecastTimeoutSeconds(a.cfg.ForecastTimeoutSeconds)
}

// listenAndServe runs handler on addr until SIGINT/SIGTERM or ctx ends, then
// shuts down gracefully.
func listenAndServe(ctx context.Context, log zerolog.Logger, addr string, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
