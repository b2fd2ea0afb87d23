package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  trote config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	p := prompter{reader: reader, out: out}
	cfg.Athlete.UserID = p.value("User id", cfg.Athlete.UserID)
	cfg.Athlete.Locale = p.value("Locale (en, es)", cfg.Athlete.Locale)
	cfg.Athlete.StartWeekday = p.value("Plan start weekday", cfg.Athlete.StartWeekday)
	cfg.LLM.Provider = p.value("LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = p.value("LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = p.value("LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.Driver = p.value("Storage driver (sqlite, firestore)", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverFirestore {
		cfg.Storage.FirestoreProject = p.value("Firestore project", cfg.Storage.FirestoreProject)
	} else {
		cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	}
	cfg.Server.Addr = p.value("API listen address", cfg.Server.Addr)
	cfg.Server.AllowedOrigins = p.slice("Allowed origins (comma-separated)", cfg.Server.AllowedOrigins)
	cfg.Strava.ClientID = p.value("Strava client id (empty to disable)", cfg.Strava.ClientID)
	if cfg.Strava.ClientID != "" {
		cfg.Strava.ClientSecret = p.value("Strava client secret", cfg.Strava.ClientSecret)
		cfg.Strava.CallbackBaseURL = p.value("Strava callback base URL", cfg.Strava.CallbackBaseURL)
	}
	cfg.UI.Theme = p.theme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[athlete]")
	fmt.Fprintf(w, "  user_id           = %s\n", cfg.Athlete.UserID)
	fmt.Fprintf(w, "  locale            = %s\n", cfg.Athlete.Locale)
	fmt.Fprintf(w, "  start_weekday     = %s\n", cfg.Athlete.StartWeekday)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider          = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model             = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url          = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  driver            = %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverFirestore {
		fmt.Fprintf(w, "  firestore_project = %s\n", cfg.Storage.FirestoreProject)
	} else {
		fmt.Fprintf(w, "  db_path           = %s\n", cfg.Storage.DBPath)
	}
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr              = %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  allowed_origins   = %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	fmt.Fprintln(w, "\n[strava]")
	if cfg.StravaEnabled() {
		fmt.Fprintf(w, "  client_id         = %s\n", cfg.Strava.ClientID)
		fmt.Fprintln(w, "  client_secret     = ********")
		fmt.Fprintf(w, "  callback_base_url = %s\n", cfg.Strava.CallbackBaseURL)
	} else {
		fmt.Fprintln(w, "  (not configured)")
	}
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme             = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter asks for values, keeping the current one on empty input.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input, _ := p.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p prompter) slice(label string, current []string) []string {
	fmt.Fprintf(p.out, "  %s [%s]: ", label, strings.Join(current, ", "))
	input, _ := p.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.out, "  Invalid theme %q. Available: %s\n", value, options)
		current = ""
	}
}
