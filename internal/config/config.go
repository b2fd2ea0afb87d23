// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/trote/internal/dateutil"
)

// Storage drivers.
const (
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
)

// Config holds the application configuration.
type Config struct {
	Athlete AthleteConfig `toml:"athlete"`
	LLM     LLMConfig     `toml:"llm"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Strava  StravaConfig  `toml:"strava"`
	UI      UIConfig      `toml:"ui"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// AthleteConfig identifies the local runner.
type AthleteConfig struct {
	UserID       string `toml:"user_id"`
	Locale       string `toml:"locale"`        // "en" or "es"
	StartWeekday string `toml:"start_weekday"` // weekday a newly activated plan starts on
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver           string `toml:"driver"` // "sqlite" or "firestore"
	DBPath           string `toml:"db_path"`
	FirestoreProject string `toml:"firestore_project"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// StravaConfig holds the Strava application credentials.
type StravaConfig struct {
	ClientID        string `toml:"client_id"`
	ClientSecret    string `toml:"client_secret"`
	CallbackBaseURL string `toml:"callback_base_url"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Athlete: AthleteConfig{
			UserID:       "local",
			Locale:       "en",
			StartWeekday: "monday",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Strava: StravaConfig{
			CallbackBaseURL: "http://localhost:8080",
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "trote.db"
	}
	return filepath.Join(home, ".local", "share", "trote", "trote.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "trote", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
// A .env file next to the config file or in the working directory feeds the
// environment without replacing variables that are already set.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Athlete overrides
	if v := os.Getenv("TROTE_USER_ID"); v != "" {
		cfg.Athlete.UserID = v
	}
	if v := os.Getenv("TROTE_LOCALE"); v != "" {
		cfg.Athlete.Locale = v
	}
	if v := os.Getenv("TROTE_START_WEEKDAY"); v != "" {
		cfg.Athlete.StartWeekday = v
	}

	// LLM overrides
	if v := os.Getenv("TROTE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("TROTE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TROTE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// Storage overrides
	if v := os.Getenv("TROTE_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("TROTE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TROTE_FIRESTORE_PROJECT"); v != "" {
		cfg.Storage.FirestoreProject = v
	}

	// Server overrides
	if v := os.Getenv("TROTE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TROTE_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}

	// Strava overrides
	if v := os.Getenv("STRAVA_CLIENT_ID"); v != "" {
		cfg.Strava.ClientID = v
	}
	if v := os.Getenv("STRAVA_CLIENT_SECRET"); v != "" {
		cfg.Strava.ClientSecret = v
	}
	if v := os.Getenv("TROTE_STRAVA_CALLBACK_BASE_URL"); v != "" {
		cfg.Strava.CallbackBaseURL = v
	}

	// UI overrides
	if v := os.Getenv("TROTE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Athlete.UserID) == "" {
		return errors.New("user_id must be set")
	}
	if !dateutil.IsLocale(c.Athlete.Locale) {
		return fmt.Errorf("unsupported locale %q, use one of: %s", c.Athlete.Locale, strings.Join(dateutil.Locales(), ", "))
	}
	if !dateutil.IsWeekday(c.Athlete.StartWeekday) {
		return fmt.Errorf("invalid start_weekday: %s", c.Athlete.StartWeekday)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DriverFirestore:
		if c.Storage.FirestoreProject == "" {
			return errors.New("firestore_project must be set when driver is firestore")
		}
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := validateURL(origin, "allowed_origins"); err != nil {
			return err
		}
	}

	if c.Strava.CallbackBaseURL != "" {
		if err := validateURL(c.Strava.CallbackBaseURL, "callback_base_url"); err != nil {
			return err
		}
	}
	return nil
}

// validateURL checks that s is an absolute http(s) URL.
func validateURL(s, field string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, s)
	}
	return nil
}

// StravaEnabled returns true if Strava credentials are configured.
func (c *Config) StravaEnabled() bool {
	return c.Strava.ClientID != "" && c.Strava.ClientSecret != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
