package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(":memory:")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestScanHistoryKeepsFiveMostRecent(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 6; i++ {
		uid := fmt.Sprintf("70000000%d", i)
		if err := s.RecordScan(uid, "P", 4); err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
	}

	scans, err := s.RecentScans()
	if err != nil {
		t.Fatalf("RecentScans: %v", err)
	}
	if len(scans) != MaxRecentScans {
		t.Fatalf("got %d scans, want %d", len(scans), MaxRecentScans)
	}
	// The six inserts land within the same millisecond; order must
	// still be newest first with only the oldest evicted.
	for i, rec := range scans {
		want := fmt.Sprintf("70000000%d", 5-i)
		if rec.UID != want {
			t.Errorf("scans[%d].UID = %s, want %s", i, rec.UID, want)
		}
	}
}

func TestRescanMovesUIDToFront(t *testing.T) {
	s := newTestStore(t)

	uids := []string{"700000001", "700000002", "700000003"}
	for _, uid := range uids {
		if err := s.RecordScan(uid, "P", 4); err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
	}
	if err := s.RecordScan("700000001", "P2", 6); err != nil {
		t.Fatalf("RecordScan: %v", err)
	}

	scans, err := s.RecentScans()
	if err != nil {
		t.Fatalf("RecentScans: %v", err)
	}
	if len(scans) != 3 {
		t.Fatalf("got %d scans, want 3 (no duplicate)", len(scans))
	}
	if scans[0].UID != "700000001" || scans[0].Nickname != "P2" || scans[0].CharacterCount != 6 {
		t.Errorf("front scan = %+v", scans[0])
	}
}

func TestClearScans(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordScan("700000001", "P", 4); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearScans(); err != nil {
		t.Fatalf("ClearScans: %v", err)
	}
	scans, err := s.RecentScans()
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 0 {
		t.Errorf("got %d scans after clear", len(scans))
	}
}

func TestSessionTitlesAreNumberedPerCharacter(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateSession("Hu Tao")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	second, err := s.CreateSession("Hu Tao")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	other, err := s.CreateSession("Furina")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if first.Title != "Hu Tao · Chat 1" || second.Title != "Hu Tao · Chat 2" {
		t.Errorf("titles = %q, %q", first.Title, second.Title)
	}
	if other.Title != "Furina · Chat 1" {
		t.Errorf("other title = %q", other.Title)
	}
	if first.ID == second.ID {
		t.Error("session IDs must be unique")
	}
	if !strings.HasPrefix(first.ID, "chat_") {
		t.Errorf("session ID %q missing chat_ prefix", first.ID)
	}
}

func TestAppendAndGetSession(t *testing.T) {
	s := newTestStore(t)

	session, err := s.CreateSession("Hu Tao")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AppendMessage(session.ID, "user", "What should I farm?"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := s.AppendMessage(session.ID, "assistant", "Crimson Witch domain."); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	loaded, err := s.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(loaded.Messages))
	}
	if loaded.Messages[0].Role != "user" || loaded.Messages[1].Role != "assistant" {
		t.Errorf("message order wrong: %+v", loaded.Messages)
	}
	if loaded.UpdatedAt.Before(loaded.CreatedAt) {
		t.Error("updated_at should be >= created_at after appends")
	}
}

func TestAppendToMissingSessionFails(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendMessage("chat_0_missing", "user", "hi"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestSessionsForCharacterOrdering(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.CreateSession("Hu Tao")
	b, _ := s.CreateSession("Hu Tao")
	if err := s.AppendMessage(a.ID, "user", "bump"); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.SessionsForCharacter("Hu Tao")
	if err != nil {
		t.Fatalf("SessionsForCharacter: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	if sessions[0].ID != a.ID {
		t.Errorf("most recently active session should be first, got %s (want %s, other %s)",
			sessions[0].ID, a.ID, b.ID)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	s := newTestStore(t)

	session, _ := s.CreateSession("Hu Tao")
	if err := s.AppendMessage(session.ID, "user", "hello"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteSession(session.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(session.ID); err == nil {
		t.Error("expected error loading deleted session")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chat_messages").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("%d orphan messages left", count)
	}
}

func TestExportMarkdown(t *testing.T) {
	s := newTestStore(t)

	session, _ := s.CreateSession("Hu Tao")
	s.AppendMessage(session.ID, "user", "What next?")
	s.AppendMessage(session.ID, "assistant", "Farm crit pieces.")

	md, filename, err := s.ExportMarkdown(session.ID)
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	if filename != "Hu_Tao_·_Chat_1.md" {
		t.Errorf("filename = %q", filename)
	}
	if !strings.HasPrefix(md, "# Chat history: Hu Tao · Chat 1\n\n") {
		t.Errorf("header wrong: %q", md)
	}
	if !strings.Contains(md, "**USER**: What next?\n\n") {
		t.Errorf("user turn missing: %q", md)
	}
	if !strings.Contains(md, "**ASSISTANT**: Farm crit pieces.\n\n") {
		t.Errorf("assistant turn missing: %q", md)
	}
}

func TestExportJSON(t *testing.T) {
	s := newTestStore(t)

	session, _ := s.CreateSession("Hu Tao")
	s.AppendMessage(session.ID, "user", "What next?")

	raw, filename, err := s.ExportJSON(session.ID)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if filename != "Hu_Tao_·_Chat_1.json" {
		t.Errorf("filename = %q", filename)
	}

	var out struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if out.ID != session.ID || out.Title != "Hu Tao · Chat 1" {
		t.Errorf("identity wrong: %+v", out)
	}
	if len(out.Messages) != 1 || out.Messages[0].Role != "user" || out.Messages[0].Content != "What next?" {
		t.Errorf("messages wrong: %+v", out.Messages)
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	key, err := s.GetCredential("gemini")
	if err != nil || key != "" {
		t.Fatalf("empty store: key=%q err=%v", key, err)
	}

	if err := s.SetCredential("gemini", "AIza-first"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCredential("gemini", "AIza-second"); err != nil {
		t.Fatal(err)
	}

	key, err = s.GetCredential("gemini")
	if err != nil {
		t.Fatal(err)
	}
	if key != "AIza-second" {
		t.Errorf("key = %q, want replacement", key)
	}

	if err := s.ClearCredential("gemini"); err != nil {
		t.Fatal(err)
	}
	key, _ = s.GetCredential("gemini")
	if key != "" {
		t.Errorf("key survived clear: %q", key)
	}
}

func TestStashRoundTripAndCorruption(t *testing.T) {
	ws := t.TempDir()
	stash := NewStash(ws)

	if state := stash.Load(); state.UID != "" {
		t.Errorf("fresh stash not empty: %+v", state)
	}

	saved := &StashState{UID: "700000001", Nickname: "Traveler", Analysis: "raw text"}
	if err := stash.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := stash.Load()
	if loaded.UID != "700000001" || loaded.Nickname != "Traveler" || loaded.Analysis != "raw text" {
		t.Errorf("reload mismatch: %+v", loaded)
	}

	// Corrupt file reads as empty state.
	if err := os.WriteFile(filepath.Join(ws, ".mentor", "stash.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if state := stash.Load(); state.UID != "" {
		t.Errorf("corrupt stash should read empty, got %+v", state)
	}

	if err := stash.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := stash.Clear(); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
}

func TestReopenOnDiskIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mentor", "mentor.db")

	s, err := NewLocalStore(path)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	if err := s.RecordScan("700000001", "P", 4); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := NewLocalStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	scans, err := s2.RecentScans()
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 1 || scans[0].UID != "700000001" {
		t.Errorf("persisted scans = %+v", scans)
	}
	if !tableExists(s2.db, "chat_sessions") {
		t.Error("chat_sessions table missing after reopen")
	}
}
