package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the inference capability: send a conversation, get free text.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// SystemUser builds the two-message conversation both pipelines use: a
// fixed system instruction followed by the caller-supplied content.
func SystemUser(system, user string) []Message {
	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}
