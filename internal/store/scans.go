package store

import (
	"fmt"
	"time"
)

// MaxRecentScans bounds the scan history; older entries are evicted.
const MaxRecentScans = 5

// ScanRecord is one remembered showcase scan.
type ScanRecord struct {
	UID            string
	Nickname       string
	CharacterCount int
	ScannedAt      time.Time
}

// RecordScan remembers a scan, deduplicating by UID: a rescan moves the
// UID to the front with fresh metadata. The history keeps at most
// MaxRecentScans entries.
func (s *LocalStore) RecordScan(uid, nickname string, characterCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ordering keys on seq, not scanned_at: back-to-back scans land in
	// the same millisecond and the timestamp alone cannot break the tie.
	now := time.Now().UnixMilli()
	_, err := s.db.Exec(`
		INSERT INTO recent_scans (uid, nickname, character_count, scanned_at, seq)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM recent_scans))
		ON CONFLICT(uid) DO UPDATE SET
			nickname = excluded.nickname,
			character_count = excluded.character_count,
			scanned_at = excluded.scanned_at,
			seq = (SELECT COALESCE(MAX(seq), 0) + 1 FROM recent_scans)`,
		uid, nickname, characterCount, now)
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}

	_, err = s.db.Exec(`
		DELETE FROM recent_scans WHERE uid NOT IN (
			SELECT uid FROM recent_scans ORDER BY seq DESC LIMIT ?
		)`, MaxRecentScans)
	if err != nil {
		return fmt.Errorf("failed to trim scan history: %w", err)
	}
	return nil
}

// RecentScans returns the scan history, most recent first.
func (s *LocalStore) RecentScans() ([]ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT uid, nickname, character_count, scanned_at
		FROM recent_scans ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan history: %w", err)
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		var ts int64
		if err := rows.Scan(&rec.UID, &rec.Nickname, &rec.CharacterCount, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.ScannedAt = time.UnixMilli(ts)
		scans = append(scans, rec)
	}
	return scans, rows.Err()
}

// ClearScans wipes the scan history.
func (s *LocalStore) ClearScans() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM recent_scans"); err != nil {
		return fmt.Errorf("failed to clear scan history: %w", err)
	}
	return nil
}
