// Package llm provides LLM clients and the coaching features built on them:
// weekly training reviews and plan generation.
package llm

import (
	"context"
)

// Chat roles. Any other role is sent as RoleUser.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation with the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat model backend. Copilot, Ollama and LM Studio implement it.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON decodes the reply into result. Replies wrapped in a code
	// fence or prose are accepted.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}
