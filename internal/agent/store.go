package agent

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/onecloudtech/insight/internal/ai"
)

// Store persists chat sessions to SQLite so a conversation can be resumed
// across runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// StoredSession summarizes one persisted session.
type StoredSession struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// DefaultStorePath returns the default database path
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/tmp"
	}
	return filepath.Join(home, ".config", "insight", "sessions.db")
}

// OpenStore opens the session database, creating it when missing.
func OpenStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultStorePath()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL mode for crash safety; the busy timeout covers overlapping CLI runs.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		message_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		tool_calls TEXT,
		tool_call_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
		UNIQUE(session_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, seq);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Save upserts the session and rewrites its messages.
func (s *Store) Save(session *Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	stats := session.GetStats()
	messages := session.GetMessages()

	_, err = tx.Exec(`
		INSERT INTO sessions (id, created_at, updated_at, message_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			message_count = excluded.message_count
	`, session.ID, stats.CreatedAt, now, len(messages))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	// Rewrite the transcript wholesale; it is small and append-mostly.
	_, err = tx.Exec("DELETE FROM messages WHERE session_id = ?", session.ID)
	if err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO messages (session_id, seq, role, content, tool_calls, tool_call_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range messages {
		var toolCallsJSON []byte
		if len(msg.ToolCalls) > 0 {
			toolCallsJSON, _ = json.Marshal(msg.ToolCalls)
		}
		if _, err := stmt.Exec(session.ID, i, msg.Role, msg.Content, toolCallsJSON, msg.ToolCallID); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load reads one session with its full transcript. The second return is
// false when the session does not exist.
func (s *Store) Load(id string) (*Session, bool, error) {
	var createdAt, updatedAt time.Time
	err := s.db.QueryRow(`
		SELECT created_at, updated_at FROM sessions WHERE id = ?
	`, id).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT role, content, tool_calls, tool_call_id
		FROM messages
		WHERE session_id = ?
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, false, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var messages []ai.Message
	for rows.Next() {
		var role, content string
		var toolCallsJSON sql.NullString
		var toolCallID sql.NullString

		if err := rows.Scan(&role, &content, &toolCallsJSON, &toolCallID); err != nil {
			return nil, false, fmt.Errorf("scan message: %w", err)
		}

		msg := ai.Message{
			Role:    role,
			Content: content,
		}
		if toolCallID.Valid {
			msg.ToolCallID = toolCallID.String
		}
		if toolCallsJSON.Valid && toolCallsJSON.String != "" {
			json.Unmarshal([]byte(toolCallsJSON.String), &msg.ToolCalls)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("read messages: %w", err)
	}

	return restoreSession(id, createdAt, updatedAt, messages), true, nil
}

// List returns every stored session, most recently updated first.
func (s *Store) List() ([]StoredSession, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, updated_at, message_count
		FROM sessions
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []StoredSession
	for rows.Next() {
		var entry StoredSession
		if err := rows.Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt, &entry.MessageCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, entry)
	}
	return sessions, rows.Err()
}

// Delete removes a session and its messages.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM messages WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanAll deletes every stored session and reclaims file space.
func (s *Store) CleanAll() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, err
	}

	if _, err := s.db.Exec("DELETE FROM messages"); err != nil {
		return 0, err
	}
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return 0, err
	}
	_, _ = s.db.Exec("VACUUM")

	return count, nil
}
