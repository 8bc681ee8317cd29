// Package config loads and saves user configuration from .mentor/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds all artimentor configuration from .mentor/config.json.
// API keys are NOT stored here; they live in the local credential store.
//
// Supported models by provider:
//   - gemini: gemini-2.5-flash (default), gemini-2.5-pro
//   - ollama: any locally pulled model (mistral by default)
type UserConfig struct {
	// Provider selection ("gemini" or "ollama").
	Provider string `json:"provider,omitempty"`

	// Optional model override (see supported models above).
	Model string `json:"model,omitempty"`

	// Ollama server base URL, default http://localhost:11434.
	OllamaURL string `json:"ollama_url,omitempty"`

	// Theme for terminal output ("dark" or "light").
	Theme string `json:"theme,omitempty"`

	// Logging controls the category file logger.
	Logging *LoggingConfig `json:"logging,omitempty"`
}

// DefaultUserConfigPath returns the path to .mentor/config.json relative
// to the workspace root.
func DefaultUserConfigPath() string {
	root, err := FindWorkspaceRoot()
	if err != nil {
		return filepath.Join(".mentor", "config.json")
	}
	return filepath.Join(root, ".mentor", "config.json")
}

// FindWorkspaceRoot walks up from the working directory looking for an
// existing .mentor directory. Falls back to the working directory itself
// so a fresh install creates its state where the user runs the tool.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".mentor")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}

// LoadUserConfig loads configuration from the given path. A missing file
// yields an empty config, not an error.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating the
// .mentor directory if needed.
func (c *UserConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// GetProvider returns the configured provider, defaulting to gemini.
func (c *UserConfig) GetProvider() string {
	if c.Provider != "" {
		return c.Provider
	}
	return "gemini"
}

// GetOllamaURL returns the Ollama base URL with its default applied.
func (c *UserConfig) GetOllamaURL() string {
	if c.OllamaURL != "" {
		return c.OllamaURL
	}
	return "http://localhost:11434"
}

// GetTheme returns the theme with its default applied.
func (c *UserConfig) GetTheme() string {
	if c.Theme == "light" {
		return "light"
	}
	return "dark"
}

// GetLogging returns logging config with defaults applied.
func (c *UserConfig) GetLogging() LoggingConfig {
	if c.Logging != nil {
		cfg := *c.Logging
		if cfg.Level == "" {
			cfg.Level = "info"
		}
		return cfg
	}
	return LoggingConfig{Level: "info"}
}
