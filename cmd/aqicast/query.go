package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aqicast/internal/chart"
)

func newCitiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List cities with a model artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}
			cities, err := svc.Cities()
			if err != nil {
				return err
			}
			for _, c := range cities {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newForecastCmd(a *app) *cobra.Command {
	var (
		days      int
		saveChart bool
	)
	cmd := &cobra.Command{
		Use:     "forecast <city>",
		Short:   "Print a forecast table for a city",
		Example: "  aqicast forecast Delhi --days 7\n  aqicast forecast Delhi --days 30 --chart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = a.cfg.DefaultHorizon
			}
			res, err := svc.Forecast(cmd.Context(), args[0], days)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Date\tPredicted AQI")
			for _, p := range res.Points {
				fmt.Fprintf(tw, "%s\t%.2f\n", p.Date.Format("2006-01-02"), p.Value)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if saveChart {
				saver, err := chart.NewSaver(a.cfg.StaticDir, chart.Options{})
				if err != nil {
					return err
				}
				rel, err := saver.Save(res)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "chart:", rel)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to forecast (defaults to default_horizon)")
	cmd.Flags().BoolVar(&saveChart, "chart", false, "Also save the chart under <static-dir>/plots")
	return cmd
}
