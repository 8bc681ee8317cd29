package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := LoadUserConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if cfg.GetProvider() != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.GetProvider())
	}
	if cfg.GetOllamaURL() != "http://localhost:11434" {
		t.Errorf("default ollama url = %q", cfg.GetOllamaURL())
	}
	if cfg.GetTheme() != "dark" {
		t.Errorf("default theme = %q, want dark", cfg.GetTheme())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mentor", "config.json")
	cfg := &UserConfig{
		Provider:  "ollama",
		Model:     "llama3",
		OllamaURL: "http://10.0.0.2:11434",
		Logging:   &LoggingConfig{DebugMode: true, Level: "debug"},
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if loaded.Provider != "ollama" || loaded.Model != "llama3" {
		t.Errorf("reload mismatch: %+v", loaded)
	}
	lc := loaded.GetLogging()
	if !lc.DebugMode || lc.Level != "debug" {
		t.Errorf("logging reload mismatch: %+v", lc)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadUserConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoggingCategoryToggle(t *testing.T) {
	lc := LoggingConfig{DebugMode: true, Categories: map[string]bool{"scan": false}}
	if lc.IsCategoryEnabled("scan") {
		t.Error("scan should be disabled")
	}
	if !lc.IsCategoryEnabled("store") {
		t.Error("unlisted category should default on")
	}
	lc.DebugMode = false
	if lc.IsCategoryEnabled("store") {
		t.Error("debug off disables everything")
	}
}
