package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// SessionRepository stores the per-session transcript and the single-slot
// "current topic". The transcript is append-only; the topic slot is
// overwritten every turn by the resolution policy.
type SessionRepository interface {
	// AddMessage appends a message to the session transcript.
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error

	// LoadHistory retrieves the full transcript for a session.
	LoadHistory(ctx context.Context, sessionID string) (*SessionHistory, error)

	// Topic returns the currently anchored place for the session,
	// or "" when no topic is set.
	Topic(ctx context.Context, sessionID string) (string, error)

	// SetTopic overwrites the topic slot. An empty topic clears it.
	SetTopic(ctx context.Context, sessionID string, topic string) error

	// ClearHistory removes all state for a session.
	ClearHistory(ctx context.Context, sessionID string) error
}

// SessionHistory represents loaded transcript data.
type SessionHistory struct {
	SessionID string            `json:"session_id"`
	Messages  []*schema.Message `json:"messages"`
}
