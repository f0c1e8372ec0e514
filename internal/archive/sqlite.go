// Package archive keeps a local, append-only copy of completed exchanges so
// transcripts can be read back (mindmate export) without the service.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"mindmate.app/client/internal/chat"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping archive: %w", err)
	}

	store := &Store{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS sessions (
        id TEXT PRIMARY KEY, -- server-assigned UUID
        title TEXT,
        archived_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS messages (
        id TEXT PRIMARY KEY, -- client-assigned UUID
        session_id TEXT NOT NULL,
        role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
        content TEXT NOT NULL,
        sent_at DATETIME NOT NULL,
        FOREIGN KEY (session_id) REFERENCES sessions (id)
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// RecordTurn stores one completed exchange. The session row is upserted so
// a title assigned mid-conversation sticks.
func (s *Store) RecordTurn(session chat.Session, user, assistant chat.Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sessions (id, title) VALUES (?, ?)
        ON CONFLICT(id) DO UPDATE SET title = excluded.title`,
		session.ID, session.Title)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	for _, msg := range []chat.Message{user, assistant} {
		_, err = tx.Exec(`INSERT OR IGNORE INTO messages (id, session_id, role, content, sent_at)
            VALUES (?, ?, ?, ?, ?)`,
			msg.ID, msg.SessionID, string(msg.Role), msg.Content, msg.SentAt)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	return tx.Commit()
}

// Sessions lists archived sessions, most recently archived first.
func (s *Store) Sessions() ([]chat.Session, error) {
	rows, err := s.db.Query(`SELECT id, COALESCE(title, '') FROM sessions ORDER BY archived_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []chat.Session
	for rows.Next() {
		var sess chat.Session
		if err := rows.Scan(&sess.ID, &sess.Title); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Messages returns a session's archived transcript in send order.
func (s *Store) Messages(sessionID string) ([]chat.Message, error) {
	rows, err := s.db.Query(
		`SELECT id, role, content, sent_at FROM messages WHERE session_id = ? ORDER BY sent_at ASC, rowid ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		msg := chat.Message{SessionID: sessionID}
		var role string
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &msg.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = chat.Role(role)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
