package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"artimentor/internal/leaderboard"
	"artimentor/internal/logging"
	"artimentor/internal/roster"
)

// Stash is the working state of the current scan: the roster, any
// fetched benchmark context and the latest raw analysis. It is a plain
// JSON file replaced wholesale when a new scan lands, deliberately
// separate from the durable history in SQLite.
type Stash struct {
	path string
}

// StashState is the persisted working state.
type StashState struct {
	UID      string                `json:"uid"`
	Nickname string                `json:"nickname"`
	Roster   []roster.RawCharacter `json:"roster"`
	Context  []leaderboard.Entry   `json:"context,omitempty"`
	Analysis string                `json:"analysis,omitempty"`
}

// NewStash creates a stash stored at .mentor/stash.json under the
// workspace.
func NewStash(workspace string) *Stash {
	return &Stash{path: filepath.Join(workspace, ".mentor", "stash.json")}
}

// Load reads the current working state. A missing or corrupt file yields
// an empty state; scan data is re-fetchable and never worth failing over.
func (s *Stash) Load() *StashState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return &StashState{}
	}
	var state StashState
	if err := json.Unmarshal(data, &state); err != nil {
		logging.Get(logging.CategoryStore).Warn("stash corrupt, starting fresh: %v", err)
		return &StashState{}
	}
	return &state
}

// Save writes the working state, creating the .mentor directory as
// needed. The write goes through a temp file so a crash cannot leave a
// half-written stash.
func (s *Stash) Save(state *StashState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create stash directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stash: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write stash: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace stash: %w", err)
	}
	return nil
}

// Clear removes the working state.
func (s *Stash) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
