// Package chat implements the completion proxy: it turns one user message
// plus prior conversation context into a single call against an external
// completion service.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maxgpt/maxgpt/internal/ai"
	"github.com/maxgpt/maxgpt/internal/logger"
)

var (
	// ErrNotConfigured means the service credential is absent. No upstream
	// call is attempted in that case.
	ErrNotConfigured = errors.New("completion service is not configured")
	ErrEmptyMessage  = errors.New("message required")
	ErrUnauthorized  = errors.New("completion service rejected the credential")
	ErrRateLimited   = errors.New("completion service rate limit exceeded")
)

const (
	// Marker tokens of a synthesized file-analysis prompt. A message is
	// classified as a file-analysis request iff it contains both.
	FilenameMarker    = "Filename:"
	FileContentMarker = "File content:"

	fileAnalysisPreamble = "You are a file analysis expert. Carefully analyze the uploaded file, " +
		"summarize its main content and lay out the key points. Cover the file's structure, the " +
		"important information it holds and anything the user should know about it. Always answer " +
		"in the language the user writes in."

	generalPreamble = "You are a friendly and helpful AI assistant. Give accurate and useful " +
		"answers to the user's questions. Always answer in the language the user writes in."

	// Returned verbatim when the service produced no usable content.
	fallbackReply = "Sorry, I was unable to generate a response."
)

// Message is one prior conversation entry as received from the client.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service proxies conversations to an ai.Provider. It is stateless; the
// conversation history lives with the caller.
type Service struct {
	provider   ai.Provider
	configured bool
}

func NewService(provider ai.Provider, configured bool) *Service {
	return &Service{provider: provider, configured: configured}
}

// IsFileAnalysis reports whether message looks like a synthesized
// file-analysis prompt. Pure substring predicate; ordinary text containing
// both markers is a known false positive.
func IsFileAnalysis(message string) bool {
	return strings.Contains(message, FilenameMarker) && strings.Contains(message, FileContentMarker)
}

func preambleFor(message string) string {
	if IsFileAnalysis(message) {
		return fileAnalysisPreamble
	}
	return generalPreamble
}

// BuildMessages assembles the outbound sequence: system preamble, prior
// messages verbatim, then the new user message. No deduplication and no
// token-budget trimming; length is bounded upstream by file truncation.
func BuildMessages(message string, prior []Message) []ai.Message {
	out := make([]ai.Message, 0, len(prior)+2)
	out = append(out, ai.Message{Role: "system", Content: preambleFor(message)})
	for _, m := range prior {
		out = append(out, ai.Message{Role: m.Role, Content: m.Content})
	}
	out = append(out, ai.Message{Role: "user", Content: message})
	return out
}

// Complete forwards one message with its prior context and returns the
// generated reply. Provider failures come back as the package sentinel
// errors; upstream payloads are logged, never returned.
func (s *Service) Complete(ctx context.Context, message string, prior []Message) (string, error) {
	if !s.configured {
		return "", ErrNotConfigured
	}
	if message == "" {
		return "", ErrEmptyMessage
	}

	reply, err := s.provider.Chat(ctx, BuildMessages(message, prior))
	if err != nil {
		var apiErr *ai.APIError
		if errors.As(err, &apiErr) {
			logger.Errorw("completion service error",
				"status", apiErr.StatusCode,
				"detail", apiErr.Message,
			)
			switch apiErr.StatusCode {
			case 401:
				return "", ErrUnauthorized
			case 429:
				return "", ErrRateLimited
			}
			return "", fmt.Errorf("completion failed: status %d", apiErr.StatusCode)
		}
		logger.Errorw("completion call failed", "error", err)
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if reply == "" {
		return fallbackReply, nil
	}
	return reply, nil
}
