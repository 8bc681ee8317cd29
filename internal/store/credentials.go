package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SetCredential stores or replaces an API key for a provider. Keys live
// in the database, not the config file, so the config can be shared or
// committed without leaking secrets.
func (s *LocalStore) SetCredential(provider, apiKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO credentials (provider, api_key, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			api_key = excluded.api_key,
			updated_at = excluded.updated_at`,
		provider, apiKey, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// GetCredential returns the stored API key for a provider, or "" when
// none is stored.
func (s *LocalStore) GetCredential(provider string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var apiKey string
	err := s.db.QueryRow(
		"SELECT api_key FROM credentials WHERE provider = ?", provider,
	).Scan(&apiKey)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return apiKey, nil
}

// ClearCredential removes a provider's stored API key.
func (s *LocalStore) ClearCredential(provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM credentials WHERE provider = ?", provider); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
