package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weatherapp/internal/config"
	"github.com/i474232898/weatherapp/internal/weather"
)

func showCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "show <location>",
		Short: "Print current, daily and hourly weather",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hours < 0 {
				return fmt.Errorf("--hours must not be negative")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			service, _ := newService(cfg)

			// Three concurrent calls, each with its own timeout, after geocoding.
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.HTTPTimeout)
			defer cancel()

			report, err := service.Report(ctx, args[0])
			if err != nil {
				return err
			}

			displayReport(cmd.OutOrStdout(), report, hours)
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 12, "number of hourly entries to print (0 for all)")
	return cmd
}

var titleCase = cases.Title(language.English)

func displayReport(w io.Writer, r weather.Report, hours int) {
	header := fmt.Sprintf("Weather for %s (%.4f, %.4f):", r.Location.Name, r.Location.Lat, r.Location.Lon)
	fmt.Fprintf(w, "%s\n", header)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(header)))

	c := r.Current
	fmt.Fprintf(w, "Conditions:    %s\n", titleCase.String(c.Description))
	fmt.Fprintf(w, "Temperature:   %.1f°C\n", c.TemperatureC)
	fmt.Fprintf(w, "Precipitation: %.1f mm\n", c.PrecipitationMm)
	fmt.Fprintf(w, "Wind:          %.1f m/s %s\n", c.WindSpeedMs, c.WindDirection())
	fmt.Fprintln(w)

	header = fmt.Sprintf("%d-Day Forecast:", len(r.Daily))
	fmt.Fprintf(w, "%s\n", header)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(header)))
	for _, day := range r.Daily {
		fmt.Fprintf(w, "%s %s: %-25s High: %5.1f°C. Low: %5.1f°C.",
			day.Date.Format("Mon"),
			day.Date.Format("2006-01-02"),
			titleCase.String(day.Description),
			day.MaxTempC,
			day.MinTempC)
		if day.PrecipitationMm > 0 {
			fmt.Fprintf(w, " Rain: %.1f mm.", day.PrecipitationMm)
		}
		fmt.Fprintln(w)
	}

	hourly := r.Hourly
	if hours > 0 && hours < len(hourly) {
		hourly = hourly[:hours]
	}
	if len(hourly) == 0 {
		return
	}

	fmt.Fprintln(w)
	header = fmt.Sprintf("Next %d Hours:", len(hourly))
	fmt.Fprintf(w, "%s\n", header)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(header)))
	for _, h := range hourly {
		fmt.Fprintf(w, "%s %5.1f°C %4.1f m/s %-4s %s\n",
			h.Hour.Format("Mon 15:04"),
			h.TemperatureC,
			h.WindSpeedMs,
			h.WindDirection(),
			titleCase.String(h.Description))
	}
}
