// Package ui implements the trote command line.
package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/reference"
	"github.com/javiermolinar/trote/internal/storage"
	"github.com/javiermolinar/trote/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  storage.Store
	config *config.Config
	tables *reference.Tables
	root   *cobra.Command
	debug  bool
	now    func() time.Time
}

// NewApp creates a new CLI application with the given store and config.
func NewApp(store storage.Store, cfg *config.Config) *App {
	a := &App{
		store:  store,
		config: cfg,
		tables: reference.Default(),
		now:    time.Now,
	}

	a.root = &cobra.Command{
		Use:   "trote",
		Short: "Running training plans in your terminal",
		Long: `Trote follows a running training plan week by week.

It resolves every session to your own paces from a recent race time,
tracks planned volume, logs workouts by hand or from Strava and can
ask an LLM coach to review your week.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.store, a.store, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Write TUI debug events to trote-debug.log")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.plansCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.loadCmd())
	a.root.AddCommand(a.activateCmd())
	a.root.AddCommand(a.saveCmd())
	a.root.AddCommand(a.pacesCmd())
	a.root.AddCommand(a.logCmd())
	a.root.AddCommand(a.workoutsCmd())
	a.root.AddCommand(a.stravaCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.generateCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trote %s (commit: %s)\n", Version, Commit)
		},
	}
}

// user is the runner the CLI acts for.
func (a *App) user() string {
	return a.config.Athlete.UserID
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
