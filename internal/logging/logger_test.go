package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupWorkspace(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	if cfg != "" {
		mentorDir := filepath.Join(dir, ".mentor")
		if err := os.MkdirAll(mentorDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(mentorDir, "config.json"), []byte(cfg), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func resetState() {
	Close()
	workspace = ""
	logsDir = ""
	config = loggingConfig{}
	logLevel = LevelInfo
}

func TestNoConfigMeansDisabled(t *testing.T) {
	defer resetState()
	ws := setupWorkspace(t, "")
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if IsDebugMode() {
		t.Error("expected debug mode off without config")
	}
	// Logging to a disabled logger must not create files.
	Get(CategoryScan).Info("dropped")
	if _, err := os.Stat(filepath.Join(ws, ".mentor", "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not exist when disabled")
	}
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	defer resetState()
	ws := setupWorkspace(t, `{"logging":{"debug_mode":true,"level":"debug"}}`)
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("expected debug mode on")
	}

	Get(CategoryScan).Info("scan message")
	Close()

	entries, err := os.ReadDir(filepath.Join(ws, ".mentor", "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	found := false
	for _, e := range entries {
		data, _ := os.ReadFile(filepath.Join(ws, ".mentor", "logs", e.Name()))
		if strings.Contains(string(data), "scan message") {
			found = true
		}
	}
	if !found {
		t.Error("expected scan message in a log file")
	}
}

func TestCategoryToggle(t *testing.T) {
	defer resetState()
	ws := setupWorkspace(t, `{"logging":{"debug_mode":true,"categories":{"scan":false,"store":true}}}`)
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if IsCategoryEnabled(CategoryScan) {
		t.Error("scan should be disabled")
	}
	if !IsCategoryEnabled(CategoryStore) {
		t.Error("store should be enabled")
	}
	// Unlisted categories default on.
	if !IsCategoryEnabled(CategoryAPI) {
		t.Error("api should default to enabled")
	}
}

func TestTimerOnDisabledLoggerIsNoop(t *testing.T) {
	defer resetState()
	ws := setupWorkspace(t, "")
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	timer := StartTimer(CategoryMentor, "analysis")
	if d := timer.Stop(); d < 0 {
		t.Errorf("negative duration %v", d)
	}
}
