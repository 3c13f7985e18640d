package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aqicast/internal/bundle"
	"aqicast/internal/dashboard"
)

func newDashboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run the interactive forecast dashboard",
		Long: "Run the interactive forecast dashboard. On start the models archive is\n" +
			"unpacked into the models directory when that directory is missing or empty.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := bundle.ExtractIfEmpty(a.cfg.ModelsArchive, a.cfg.ModelsDir)
			if err != nil {
				return fmt.Errorf("unpack %s: %w", a.cfg.ModelsArchive, err)
			}
			if names != nil {
				a.log.Info().Str("archive", a.cfg.ModelsArchive).Strs("files", names).Msg("extracted models")
			}
			svc, err := a.newService()
			if err != nil {
				return err
			}
			configureHTTP(a)
			return listenAndServe(cmd.Context(), a.log, a.cfg.DashboardAddr, dashboard.NewMux(svc, a.cfg.DefaultHorizon))
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address (defaults AQICAST_DASHBOARD_ADDR or :8501)")
	cmd.Flags().String("models-archive", "", "Zip archive unpacked into an empty models directory")
	return cmd
}
