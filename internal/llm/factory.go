package llm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// ErrUnsupportedProvider is returned for an unknown provider name.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

var providerAliases = map[string]string{
	"":          ProviderCopilot,
	"lm-studio": ProviderLMStudio,
	"llmstudio": ProviderLMStudio,
}

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderCopilot, ProviderOllama, ProviderLMStudio}
}

// CanonicalProvider normalizes a configured provider name, resolving aliases.
func CanonicalProvider(provider string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(provider))
	if alias, ok := providerAliases[p]; ok {
		return alias, nil
	}
	if slices.Contains(Providers(), p) {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
}

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	p, err := CanonicalProvider(provider)
	if err != nil {
		return nil, err
	}
	switch p {
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	default:
		return NewCopilotClient(model)
	}
}
