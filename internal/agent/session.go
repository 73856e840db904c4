package agent

import (
	"sync"
	"time"

	"github.com/onecloudtech/insight/internal/ai"
)

// Session holds one conversation's message history. Safe for concurrent use.
type Session struct {
	ID        string
	messages  []ai.Message
	createdAt time.Time
	updatedAt time.Time
	mu        sync.RWMutex
}

// NewSession starts an empty session. An empty id gets a generated one.
func NewSession(id string) *Session {
	if id == "" {
		id = generateSessionID()
	}

	now := time.Now()
	return &Session{
		ID:        id,
		createdAt: now,
		updatedAt: now,
		messages:  []ai.Message{},
	}
}

// restoreSession rebuilds a session loaded from storage.
func restoreSession(id string, createdAt, updatedAt time.Time, messages []ai.Message) *Session {
	return &Session{
		ID:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
		messages:  messages,
	}
}

// AddMessage appends one message and bumps the updated timestamp.
func (s *Session) AddMessage(msg ai.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	s.updatedAt = time.Now()
}

// GetMessages returns a copy of the history so callers cannot mutate it.
func (s *Session) GetMessages() []ai.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]ai.Message, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// ClearMessages drops the history but keeps system messages so the
// investigator persona survives a reset.
func (s *Session) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keep []ai.Message
	for _, msg := range s.messages {
		if msg.Role == "system" {
			keep = append(keep, msg)
		}
	}

	s.messages = keep
	s.updatedAt = time.Now()
}

// GetStats summarizes the session for the stats REPL command and the
// sessions listing.
func (s *Session) GetStats() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := SessionStats{
		SessionID:    s.ID,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
		MessageCount: len(s.messages),
	}

	for _, msg := range s.messages {
		switch msg.Role {
		case "user":
			stats.UserMessages++
		case "assistant":
			stats.AssistantMessages++
		case "tool":
			stats.ToolMessages++
		case "system":
			stats.SystemMessages++
		}
	}

	return stats
}

// SessionStats is a per-role message breakdown for one session.
type SessionStats struct {
	SessionID         string    `json:"session_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	MessageCount      int       `json:"message_count"`
	UserMessages      int       `json:"user_messages"`
	AssistantMessages int       `json:"assistant_messages"`
	ToolMessages      int       `json:"tool_messages"`
	SystemMessages    int       `json:"system_messages"`
}

func generateSessionID() string {
	return "session_" + time.Now().Format("20060102_150405")
}
