package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatSession is one saved conversation about a character.
type ChatSession struct {
	ID        string
	Character string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []ChatMessage
}

// ChatMessage is one turn of a chat session.
type ChatMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// newSessionID mints a chat session id: a millisecond timestamp plus a
// short random suffix so two sessions created in the same instant never
// collide.
func newSessionID(now time.Time) string {
	return fmt.Sprintf("chat_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

// CreateSession starts a new chat session for a character. Titles are
// numbered per character: "Hu Tao · Chat 3".
func (s *LocalStore) CreateSession(character string) (*ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM chat_sessions WHERE character = ?", character,
	).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	now := time.Now()
	session := &ChatSession{
		ID:        newSessionID(now),
		Character: character,
		Title:     fmt.Sprintf("%s · Chat %d", character, count+1),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(`
		INSERT INTO chat_sessions (id, character, title, created_at, updated_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_sessions))`,
		session.ID, session.Character, session.Title, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// AppendMessage adds a turn to a session and bumps its activity order
// so the session list stays sorted. The seq bump, not updated_at,
// decides the order: same-millisecond appends must not tie.
func (s *LocalStore) AppendMessage(sessionID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	res, err := s.db.Exec(`
		UPDATE chat_sessions SET
			updated_at = ?,
			seq = (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_sessions)
		WHERE id = ?`, now, sessionID)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}

	_, err = s.db.Exec(`
		INSERT INTO chat_messages (session_id, role, content, created_at)
		VALUES (?, ?, ?, ?)`, sessionID, role, content, now)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// GetSession loads one session with its full message history.
func (s *LocalStore) GetSession(sessionID string) (*ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.scanSession(sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT role, content, created_at FROM chat_messages
		WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg ChatMessage
		var ts int64
		if err := rows.Scan(&msg.Role, &msg.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.CreatedAt = time.UnixMilli(ts)
		session.Messages = append(session.Messages, msg)
	}
	return session, rows.Err()
}

func (s *LocalStore) scanSession(sessionID string) (*ChatSession, error) {
	var session ChatSession
	var created, updated int64
	err := s.db.QueryRow(`
		SELECT id, character, title, created_at, updated_at
		FROM chat_sessions WHERE id = ?`, sessionID).
		Scan(&session.ID, &session.Character, &session.Title, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	session.CreatedAt = time.UnixMilli(created)
	session.UpdatedAt = time.UnixMilli(updated)
	return &session, nil
}

// SessionsForCharacter lists a character's sessions, most recently
// active first, without message bodies.
func (s *LocalStore) SessionsForCharacter(character string) ([]ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, character, title, created_at, updated_at
		FROM chat_sessions WHERE character = ?
		ORDER BY seq DESC`, character)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []ChatSession
	for rows.Next() {
		var session ChatSession
		var created, updated int64
		if err := rows.Scan(&session.ID, &session.Character, &session.Title, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		session.CreatedAt = time.UnixMilli(created)
		session.UpdatedAt = time.UnixMilli(updated)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and, via cascade, its messages.
func (s *LocalStore) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM chat_sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// ExportMarkdown renders a session as a Markdown transcript. The second
// return value is the suggested filename.
func (s *LocalStore) ExportMarkdown(sessionID string) (string, string, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Chat history: %s\n\n", session.Title)
	for _, msg := range session.Messages {
		fmt.Fprintf(&b, "**%s**: %s\n\n", strings.ToUpper(msg.Role), msg.Content)
	}

	filename := strings.ReplaceAll(session.Title, " ", "_") + ".md"
	return b.String(), filename, nil
}

// ExportJSON renders a session, messages included, as indented JSON.
// The second return value is the suggested filename.
func (s *LocalStore) ExportJSON(sessionID string) (string, string, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return "", "", err
	}

	type jsonMessage struct {
		Role      string `json:"role"`
		Content   string `json:"content"`
		CreatedAt int64  `json:"created_at"`
	}
	out := struct {
		ID        string        `json:"id"`
		Character string        `json:"character"`
		Title     string        `json:"title"`
		CreatedAt int64         `json:"created_at"`
		UpdatedAt int64         `json:"updated_at"`
		Messages  []jsonMessage `json:"messages"`
	}{
		ID:        session.ID,
		Character: session.Character,
		Title:     session.Title,
		CreatedAt: session.CreatedAt.UnixMilli(),
		UpdatedAt: session.UpdatedAt.UnixMilli(),
		Messages:  make([]jsonMessage, 0, len(session.Messages)),
	}
	for _, msg := range session.Messages {
		out.Messages = append(out.Messages, jsonMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.UnixMilli(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to encode session: %w", err)
	}

	filename := strings.ReplaceAll(session.Title, " ", "_") + ".json"
	return string(data), filename, nil
}
