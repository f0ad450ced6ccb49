package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weatherapp/internal/api/http"
	"github.com/i474232898/weatherapp/internal/config"
	"github.com/i474232898/weatherapp/internal/scheduler"
	"github.com/i474232898/weatherapp/internal/session"
	"github.com/i474232898/weatherapp/internal/store"
	"github.com/i474232898/weatherapp/internal/weather"
	"github.com/i474232898/weatherapp/internal/weather/providers"
)

var stateFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "weatherapp",
		Short:         "Weather lookups with favourites",
		Long:          "Resolve locations and fetch current, daily and hourly weather from OpenWeatherMap",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&stateFile, "state", "s", "", "state file path (default $STATE_FILE or weatherapp.json)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(favoritesCmd())
	return rootCmd
}

func statePath() string {
	if stateFile != "" {
		return stateFile
	}
	return config.StatePath()
}

// newService builds the provider stack shared by serve and show.
func newService(cfg *config.AppConfig) (*weather.Service, *providers.OpenWeatherProvider) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	prov := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, providers.OpenWeatherOptions{
		BaseURL:     cfg.OpenWeatherURL,
		IconBaseURL: cfg.IconBaseURL,
		Timeout:     cfg.HTTPTimeout,
	})
	return weather.NewService(prov), prov
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Restore saved state, start autosave and serve the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if stateFile != "" {
				cfg.StateFile = stateFile
			}

			service, prov := newService(cfg)

			files := store.NewFileStore(cfg.StateFile)
			sess := session.New(prov, cfg.DefaultLocation, files)

			saved, err := files.Load()
			if err != nil {
				return fmt.Errorf("failed to load state: %w", err)
			}

			restoreCtx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.HTTPTimeout)
			sess.Restore(restoreCtx, saved)
			cancel()
			log.Printf("INFO: provider %s, state file %s", prov.Name(), cfg.StateFile)
			log.Printf("INFO: restored %d favourites, location %q", len(saved.Favorites), sess.Location())

			// Scheduler that periodically saves the session.
			sched := scheduler.New(cfg.AutosaveInterval, sess)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			app := httpapi.NewApp(service, sess)

			go func() {
				if err := app.Listen(":" + cfg.Port); err != nil {
					log.Printf("INFO: fiber server stopped: %v", err)
				}
			}()
			log.Printf("INFO: listening on :%s", cfg.Port)

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancelShutdown()

			if err := shutdown(shutdownCtx, app, sched, sess); err != nil {
				return err
			}
			log.Printf("INFO: state saved to %s", cfg.StateFile)
			return nil
		},
	}
}

type (
	shutdowner interface {
		ShutdownWithContext(ctx context.Context) error
	}
	stopper interface{ Stop() }
	saver   interface{ Save() error }
)

// shutdown drains the server, then stops autosave and writes the final
// snapshot. No autosave run can land after the final save.
func shutdown(ctx context.Context, app shutdowner, sched stopper, sess saver) error {
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("ERROR: error during shutdown: %v", err)
	}

	sched.Stop()

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
