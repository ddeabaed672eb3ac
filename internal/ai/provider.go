// Package ai contains clients for external chat-completion services.
package ai

import (
	"context"
	"fmt"
)

// Message is one role-tagged entry in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a synchronous chat-completion backend.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// APIError is a non-2xx answer from a completion service. Message holds a
// bounded excerpt of the upstream body and must never be shown to end users.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion service: status %d: %s", e.StatusCode, e.Message)
}
