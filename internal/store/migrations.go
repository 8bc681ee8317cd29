package store

import (
	"database/sql"
	"fmt"
)

// schema is the full current schema; CREATE IF NOT EXISTS keeps reopen
// idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS recent_scans (
		uid TEXT PRIMARY KEY,
		nickname TEXT NOT NULL DEFAULT '',
		character_count INTEGER NOT NULL DEFAULT 0,
		scanned_at INTEGER NOT NULL,
		seq INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		character TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		seq INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session
		ON chat_messages(session_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_sessions_character
		ON chat_sessions(character, seq DESC)`,
	`CREATE TABLE IF NOT EXISTS credentials (
		provider TEXT PRIMARY KEY,
		api_key TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

func (s *LocalStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
	).Scan(&name)
	return err == nil
}
