package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestNewClient_Local(t *testing.T) {
	tests := []struct {
		provider, baseURL string
		wantProvider      string
		wantURL           string
	}{
		{"ollama", "", ProviderOllama, defaultOllamaBaseURL},
		{"LM-Studio", "http://127.0.0.1:1234/v1", ProviderLMStudio, "http://127.0.0.1:1234/v1"},
		{"lmstudio", "", ProviderLMStudio, defaultLMStudioBaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			client, err := NewClient(tt.provider, "llama3", tt.baseURL)
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			local, ok := client.(*LocalClient)
			if !ok {
				t.Fatalf("got %T, want *LocalClient", client)
			}
			if local.Provider() != tt.wantProvider || local.baseURL != tt.wantURL {
				t.Errorf("client = %s at %q, want %s at %q", local.Provider(), local.baseURL, tt.wantProvider, tt.wantURL)
			}
		})
	}
}

func TestNewClient_LocalNeedsModel(t *testing.T) {
	for _, p := range []string{ProviderOllama, ProviderLMStudio} {
		if _, err := NewClient(p, " ", ""); err == nil {
			t.Errorf("%s: expected an error without a model", p)
		}
	}
}

func TestLocalClient_WrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	c := &LocalClient{provider: ProviderOllama, model: "llama3", send: func(context.Context, []Message, bool) (string, error) {
		return "", boom
	}}
	if _, err := c.Chat(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("Chat error = %v, want wrapped %v", err, boom)
	}
}

func TestLocalClient_ChatJSONAsksForJSON(t *testing.T) {
	var gotJSON bool
	c := &LocalClient{provider: ProviderOllama, model: "llama3", send: func(_ context.Context, _ []Message, jsonMode bool) (string, error) {
		gotJSON = jsonMode
		return "Sure:\n```json\n{\"ok\": true}\n```", nil
	}}
	var out struct{ OK bool }
	if err := c.ChatJSON(context.Background(), []Message{{Role: "user", Content: "hi"}}, &out); err != nil {
		t.Fatalf("ChatJSON: %v", err)
	}
	if !gotJSON || !out.OK {
		t.Errorf("jsonMode = %v, decoded = %+v", gotJSON, out)
	}
}

func TestToLangChainMessages(t *testing.T) {
	msgs := toLangChainMessages([]Message{
		{Role: "system", Content: "coach"},
		{Role: "assistant", Content: "{}"},
		{Role: "User", Content: "week"},
		{Role: "tool", Content: "x"},
	})
	want := []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeHuman,
	}
	if len(msgs) != len(want) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(want))
	}
	for i, m := range msgs {
		if m.Role != want[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, want[i])
		}
	}
}

func TestCanonicalProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", ProviderCopilot, false},
		{" Ollama ", ProviderOllama, false},
		{"llmstudio", ProviderLMStudio, false},
		{"openrouter", "", true},
	}
	for _, tt := range tests {
		got, err := CanonicalProvider(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedProvider) {
				t.Errorf("CanonicalProvider(%q) error = %v, want ErrUnsupportedProvider", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CanonicalProvider(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	if _, err := NewClient("unknown", "model", ""); !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}
