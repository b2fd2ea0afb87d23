package llm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGitHubToken_Env(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gho_env")
	got, err := LoadGitHubToken()
	if err != nil || got != "gho_env" {
		t.Fatalf("LoadGitHubToken() = %q, %v", got, err)
	}
}

func TestLoadGitHubToken_AppsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	if _, err := LoadGitHubToken(); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}

	copilotDir := filepath.Join(dir, "github-copilot")
	if err := os.MkdirAll(copilotDir, 0o755); err != nil {
		t.Fatal(err)
	}
	apps := `{"github.com:Iv1.b507a08c87ecfe98": {"user": "runner", "oauth_token": "gho_file"}}`
	if err := os.WriteFile(filepath.Join(copilotDir, "apps.json"), []byte(apps), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadGitHubToken()
	if err != nil || got != "gho_file" {
		t.Fatalf("LoadGitHubToken() = %q, %v", got, err)
	}
}

func TestLoadTokenFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.json")
	if err := os.WriteFile(path, []byte(`{"gitlab.com": {"oauth_token": "x"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadTokenFromFile(path); err == nil {
		t.Fatal("expected error when no github.com entry exists")
	}
}
