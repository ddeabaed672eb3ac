// Package session owns the client-side conversation state: the append-only
// turn history and the busy gate that serializes in-flight requests.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Origin tags who authored a turn.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// Turn is one immutable conversation entry. FileName is set on the visible
// marker turn of a file upload; the file content itself never enters the
// history.
type Turn struct {
	ID        string
	Text      string
	Origin    Origin
	CreatedAt time.Time
	FileName  string
}

func newTurn(origin Origin, text, fileName string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Text:      text,
		Origin:    origin,
		CreatedAt: time.Now(),
		FileName:  fileName,
	}
}

// Message is the role-tagged projection sent to the completion proxy.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Wire projects turns into role/content pairs. This is the only form in
// which history leaves the session.
func Wire(turns []Turn) []Message {
	out := make([]Message, 0, len(turns))
	for _, t := range turns {
		out = append(out, Message{Role: string(t.Origin), Content: t.Text})
	}
	return out
}
