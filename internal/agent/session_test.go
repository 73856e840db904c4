package agent

import (
	"strings"
	"testing"

	"github.com/onecloudtech/insight/internal/ai"
)

func TestNewSessionGeneratesID(t *testing.T) {
	s := NewSession("")
	if !strings.HasPrefix(s.ID, "session_") {
		t.Errorf("generated ID = %q, want session_ prefix", s.ID)
	}

	named := NewSession("case-4711")
	if named.ID != "case-4711" {
		t.Errorf("ID = %q, want case-4711", named.ID)
	}
}

func TestGetMessagesReturnsCopy(t *testing.T) {
	s := NewSession("copy-test")
	s.AddMessage(ai.Message{Role: "user", Content: "original"})

	msgs := s.GetMessages()
	msgs[0].Content = "mutated"

	if got := s.GetMessages()[0].Content; got != "original" {
		t.Errorf("session message = %q, want original after mutating the copy", got)
	}
}

func TestClearMessagesKeepsSystem(t *testing.T) {
	s := NewSession("clear-test")
	s.AddMessage(ai.Message{Role: "system", Content: "you are a test"})
	s.AddMessage(ai.Message{Role: "user", Content: "hello"})
	s.AddMessage(ai.Message{Role: "assistant", Content: "hi"})

	s.ClearMessages()

	msgs := s.GetMessages()
	if len(msgs) != 1 {
		t.Fatalf("messages after clear = %d, want 1", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Errorf("surviving role = %q, want system", msgs[0].Role)
	}
}

func TestGetStats(t *testing.T) {
	s := NewSession("stats-test")
	s.AddMessage(ai.Message{Role: "system", Content: "sys"})
	s.AddMessage(ai.Message{Role: "user", Content: "q1"})
	s.AddMessage(ai.Message{Role: "assistant", ToolCalls: []ai.ToolCall{{ID: "call_1", Name: "get_vehicles"}}})
	s.AddMessage(ai.Message{Role: "tool", Content: "{}", ToolCallID: "call_1"})
	s.AddMessage(ai.Message{Role: "assistant", Content: "answer"})

	stats := s.GetStats()
	if stats.SessionID != "stats-test" {
		t.Errorf("SessionID = %q, want stats-test", stats.SessionID)
	}
	if stats.MessageCount != 5 {
		t.Errorf("MessageCount = %d, want 5", stats.MessageCount)
	}
	if stats.UserMessages != 1 || stats.AssistantMessages != 2 || stats.ToolMessages != 1 || stats.SystemMessages != 1 {
		t.Errorf("role counts = %d/%d/%d/%d, want 1/2/1/1",
			stats.UserMessages, stats.AssistantMessages, stats.ToolMessages, stats.SystemMessages)
	}
}
