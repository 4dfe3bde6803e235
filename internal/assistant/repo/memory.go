// Package repo provides session stores for the assistant: an in-memory
// store for the single-process reference design and a Redis-backed store
// for server deployments with many concurrent sessions.
package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/tayninh-assistant/server/internal/assistant/model"
)

type memorySession struct {
	messages []*schema.Message
	topic    string
}

// MemorySessionRepository keeps transcripts and topic slots in process
// memory; everything is discarded when the process exits.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*memorySession)}
}

func (r *MemorySessionRepository) session(sessionID string) *memorySession {
	s, ok := r.sessions[sessionID]
	if !ok {
		s = &memorySession{}
		r.sessions[sessionID] = s
	}
	return s
}

func (r *MemorySessionRepository) AddMessage(_ context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session(sessionID)
	s.messages = append(s.messages, message)
	return nil
}

func (r *MemorySessionRepository) LoadHistory(_ context.Context, sessionID string) (*model.SessionHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := &model.SessionHistory{SessionID: sessionID}
	if s, ok := r.sessions[sessionID]; ok {
		history.Messages = make([]*schema.Message, len(s.messages))
		copy(history.Messages, s.messages)
	}
	return history, nil
}

func (r *MemorySessionRepository) Topic(_ context.Context, sessionID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s.topic, nil
	}
	return "", nil
}

func (r *MemorySessionRepository) SetTopic(_ context.Context, sessionID string, topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session(sessionID).topic = topic
	return nil
}

func (r *MemorySessionRepository) ClearHistory(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
