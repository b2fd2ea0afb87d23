package llm

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	defaultOllamaBaseURL   = "http://localhost:11434"
	defaultLMStudioBaseURL = "http://localhost:1234/v1"
)

// sendFunc performs one exchange with a model. jsonMode asks the backend
// for a JSON object when it supports it.
type sendFunc func(ctx context.Context, messages []Message, jsonMode bool) (string, error)

// LocalClient talks to a model served on the runner's own machine.
type LocalClient struct {
	provider string
	model    string
	baseURL  string
	send     sendFunc
}

// Provider returns the canonical provider name.
func (c *LocalClient) Provider() string { return c.provider }

// Chat sends messages to the model and returns its reply.
func (c *LocalClient) Chat(ctx context.Context, messages []Message) (string, error) {
	out, err := c.send(ctx, messages, false)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", c.provider, c.model, err)
	}
	return out, nil
}

// ChatJSON sends messages and decodes the JSON reply into result.
func (c *LocalClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	out, err := c.send(ctx, messages, true)
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.provider, c.model, err)
	}
	return decodeJSON(out, result)
}

func requireModel(provider, model string) error {
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf("%s needs a model name", provider)
	}
	return nil
}

// NewOllamaClient connects to an Ollama server through langchaingo.
func NewOllamaClient(model, baseURL string) (*LocalClient, error) {
	if err := requireModel(ProviderOllama, model); err != nil {
		return nil, err
	}
	baseURL = cmp.Or(baseURL, defaultOllamaBaseURL)
	backend, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	send := func(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
		opts := []llms.CallOption{llms.WithModel(model)}
		if jsonMode {
			opts = append(opts, llms.WithJSONMode())
		}
		resp, err := backend.GenerateContent(ctx, toLangChainMessages(messages), opts...)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errNoChoices
		}
		return resp.Choices[0].Content, nil
	}
	return &LocalClient{provider: ProviderOllama, model: model, baseURL: baseURL, send: send}, nil
}

// NewLMStudioClient connects to LM Studio's OpenAI compatible server. The
// key comes from LMSTUDIO_API_KEY or OPENAI_API_KEY; LM Studio accepts any.
func NewLMStudioClient(model, baseURL string) (*LocalClient, error) {
	if err := requireModel(ProviderLMStudio, model); err != nil {
		return nil, err
	}
	baseURL = cmp.Or(baseURL, defaultLMStudioBaseURL)
	backend := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cmp.Or(os.Getenv("LMSTUDIO_API_KEY"), os.Getenv("OPENAI_API_KEY"), "lm-studio")),
	)

	send := func(ctx context.Context, messages []Message, _ bool) (string, error) {
		return complete(ctx, backend, model, messages)
	}
	return &LocalClient{provider: ProviderLMStudio, model: model, baseURL: baseURL, send: send}, nil
}

// toLangChainMessages maps chat roles onto langchaingo message types.
// Unknown roles are sent as the user.
func toLangChainMessages(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch strings.ToLower(msg.Role) {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		out[i] = llms.TextParts(role, msg.Content)
	}
	return out
}
