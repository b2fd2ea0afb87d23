package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrTokenNotFound is returned when no GitHub token is available for Copilot.
var ErrTokenNotFound = errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot in your editor")

// LoadGitHubToken returns the GitHub OAuth token used to obtain a Copilot
// session. GITHUB_TOKEN wins, then the hosts.json and apps.json files the
// Copilot editor plugins write.
func LoadGitHubToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	configDir, err := getConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}
	for _, name := range []string{"hosts.json", "apps.json"} {
		if token, err := loadTokenFromFile(filepath.Join(configDir, "github-copilot", name)); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

func getConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return local, nil
		}
		return filepath.Join(home, "AppData", "Local"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// loadTokenFromFile extracts the oauth_token of the github.com entry.
func loadTokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var hosts map[string]struct {
		OAuthToken string `json:"oauth_token"`
	}
	if err := json.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	for host, entry := range hosts {
		if strings.Contains(host, "github.com") && entry.OAuthToken != "" {
			return entry.OAuthToken, nil
		}
	}
	return "", fmt.Errorf("oauth_token not found in %s", path)
}
