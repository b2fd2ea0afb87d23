package ui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/server"
	"github.com/javiermolinar/trote/internal/strava"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Start the HTTP API used by web and mobile clients. Requests identify
the runner with the ` + server.UserHeader + ` header.

The Strava callback is served at ` + strava.CallbackPath + ` when Strava is configured.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := server.Config{
				Addr:           a.config.Server.Addr,
				AllowedOrigins: a.config.Server.AllowedOrigins,
				Locale:         a.config.Athlete.Locale,
				StartWeekday:   a.config.Athlete.StartWeekday,
			}
			if addr != "" {
				cfg.Addr = addr
			}

			var sc *strava.Client
			if a.config.StravaEnabled() {
				sc = a.stravaClient()
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "Strava is not configured, import endpoints will return 503")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, a.store, a.store, sc).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

