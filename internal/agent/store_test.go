package agent

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/onecloudtech/insight/internal/ai"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	session := NewSession("trip_1")
	session.AddMessage(ai.Message{Role: "system", Content: "You are a lookup assistant."})
	session.AddMessage(ai.Message{Role: "user", Content: "find 山田太郎"})
	session.AddMessage(ai.Message{
		Role:    "assistant",
		Content: "",
		ToolCalls: []ai.ToolCall{
			{ID: "call_1", Name: "get_person_baseinfo", Args: map[string]interface{}{"id": "110101199003074258"}},
		},
	})
	session.AddMessage(ai.Message{Role: "tool", Content: `{"found":true}`, ToolCallID: "call_1"})

	if err := store.Save(session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, found, err := store.Load("trip_1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false, want true")
	}

	messages := loaded.GetMessages()
	if len(messages) != 4 {
		t.Fatalf("loaded %d messages, want 4", len(messages))
	}
	for i, want := range []string{"system", "user", "assistant", "tool"} {
		if messages[i].Role != want {
			t.Errorf("message %d role = %q, want %q", i, messages[i].Role, want)
		}
	}

	assistant := messages[2]
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("assistant has %d tool calls, want 1", len(assistant.ToolCalls))
	}
	if assistant.ToolCalls[0].Name != "get_person_baseinfo" {
		t.Errorf("tool call name = %q, want get_person_baseinfo", assistant.ToolCalls[0].Name)
	}
	if got := assistant.ToolCalls[0].Args["id"]; got != "110101199003074258" {
		t.Errorf("tool call arg id = %v, want 110101199003074258", got)
	}
	if messages[3].ToolCallID != "call_1" {
		t.Errorf("tool message ToolCallID = %q, want call_1", messages[3].ToolCallID)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	session, found, err := store.Load("nope")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Load() found = true for missing session")
	}
	if session != nil {
		t.Error("Load() returned a session for a missing id")
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	session := NewSession("grow")
	session.AddMessage(ai.Message{Role: "user", Content: "first"})
	if err := store.Save(session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	session.AddMessage(ai.Message{Role: "assistant", Content: "second"})
	if err := store.Save(session); err != nil {
		t.Fatalf("Save() again error = %v", err)
	}

	loaded, _, err := store.Load("grow")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(loaded.GetMessages()); got != 2 {
		t.Errorf("loaded %d messages after resave, want 2", got)
	}
}

func TestStoreList(t *testing.T) {
	store := newTestStore(t)

	first := NewSession("older")
	first.AddMessage(ai.Message{Role: "user", Content: "hi"})
	if err := store.Save(first); err != nil {
		t.Fatalf("Save(older) error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second := NewSession("newer")
	second.AddMessage(ai.Message{Role: "user", Content: "hi"})
	second.AddMessage(ai.Message{Role: "assistant", Content: "hello"})
	if err := store.Save(second); err != nil {
		t.Fatalf("Save(newer) error = %v", err)
	}

	sessions, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("List() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != "newer" {
		t.Errorf("List()[0].ID = %q, want newer (most recent first)", sessions[0].ID)
	}
	if sessions[0].MessageCount != 2 {
		t.Errorf("List()[0].MessageCount = %d, want 2", sessions[0].MessageCount)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	keep := NewSession("keep")
	keep.AddMessage(ai.Message{Role: "user", Content: "stay"})
	gone := NewSession("gone")
	gone.AddMessage(ai.Message{Role: "user", Content: "bye"})
	for _, s := range []*Session{keep, gone} {
		if err := store.Save(s); err != nil {
			t.Fatalf("Save(%s) error = %v", s.ID, err)
		}
	}

	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, found, _ := store.Load("gone"); found {
		t.Error("deleted session still loads")
	}
	if _, found, _ := store.Load("keep"); !found {
		t.Error("unrelated session was deleted")
	}
}

func TestStoreCleanAll(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		session := NewSession(id)
		session.AddMessage(ai.Message{Role: "user", Content: "x"})
		if err := store.Save(session); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	count, err := store.CleanAll()
	if err != nil {
		t.Fatalf("CleanAll() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CleanAll() = %d, want 3", count)
	}

	sessions, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("List() returned %d sessions after clean, want 0", len(sessions))
	}
}

func TestDefaultStorePath(t *testing.T) {
	path := DefaultStorePath()
	if !strings.HasSuffix(path, filepath.Join(".config", "insight", "sessions.db")) {
		t.Errorf("DefaultStorePath() = %q, want .config/insight/sessions.db suffix", path)
	}
}
