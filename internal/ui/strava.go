package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/importer"
	"github.com/javiermolinar/trote/internal/strava"
)

// stravaClient builds a Strava client from the config, storing tokens in
// the app store.
func (a *App) stravaClient() *strava.Client {
	return strava.NewClient(strava.Config{
		ClientID:        a.config.Strava.ClientID,
		ClientSecret:    a.config.Strava.ClientSecret,
		CallbackBaseURL: a.config.Strava.CallbackBaseURL,
	}, a.store)
}

func (a *App) stravaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strava",
		Short: "Connect Strava and import activities",
		Long: `Connect your Strava account and import runs into the workout log.

  trote strava auth              print the authorisation URL
  trote strava connect --code X  finish the connection with the code Strava returned
  trote strava import            import new activities since the plan start`,
	}

	cmd.AddCommand(a.stravaAuthCmd())
	cmd.AddCommand(a.stravaConnectCmd())
	cmd.AddCommand(a.stravaImportCmd())
	return cmd
}

func (a *App) stravaAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Print the Strava authorisation URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.stravaClient().AuthorizeURL(a.user())
			if errors.Is(err, strava.ErrNotConfigured) {
				return errors.New("strava is not configured, set client_id and client_secret with 'trote config'")
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Open this URL and approve access:")
			fmt.Fprintf(out, "\n  %s\n\n", u)
			fmt.Fprintln(out, "Then run 'trote strava connect --code <code>' with the code from the redirect,")
			fmt.Fprintln(out, "or let 'trote serve' receive the callback.")
			return nil
		},
	}
}

func (a *App) stravaConnectCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Exchange an authorisation code for a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.stravaClient()
			if !c.Configured() {
				return strava.ErrNotConfigured
			}
			t, err := c.Exchange(cmd.Context(), a.user(), code)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected to Strava athlete %d\n", t.AthleteID)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorisation code from the Strava redirect")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func (a *App) stravaImportCmd() *cobra.Command {
	var after string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Strava activities into the workout log",
		Long: `Import runs from Strava. Activities already imported are skipped and
each new one is matched to a day of the active plan when possible.

Without --after, activities since the active plan start are imported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.stravaClient()
			if !c.Configured() {
				return strava.ErrNotConfigured
			}
			var since time.Time
			if after != "" {
				d, err := dateutil.ParseDate(after)
				if err != nil {
					return err
				}
				since = d
			}

			im := importer.New(a.store, a.store, c,
				importer.WithClock(a.now),
				importer.WithLocale(a.config.Athlete.Locale),
			)
			res, err := im.Import(cmd.Context(), a.user(), since)
			if errors.Is(err, strava.ErrNotConnected) {
				return errors.New("strava is not connected, run 'trote strava auth' first")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d · imported %d · matched to plan %d · skipped %d\n",
				res.Fetched, res.Imported, res.Matched, res.Skipped)
			if len(res.Logs) > 0 {
				fmt.Fprintln(out)
				printWorkouts(out, res.Logs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Only import activities after this date (YYYY-MM-DD)")
	return cmd
}
