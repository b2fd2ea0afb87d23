package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeJSON extracts the JSON payload of a model reply into result.
func decodeJSON(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}

// extractJSON returns the JSON inside a reply that may wrap it in a markdown
// code fence or surround it with prose.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		idx := strings.Index(s, fence)
		if idx == -1 {
			continue
		}
		body := strings.TrimLeft(s[idx+len(fence):], "\r\n")
		if end := strings.Index(body, "```"); end != -1 {
			return strings.TrimRight(body[:end], "\r\n")
		}
	}

	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return s
	}
	depth := 0
	for j := start; j < len(s); j++ {
		switch s[j] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : j+1]
			}
		}
	}
	return s
}
