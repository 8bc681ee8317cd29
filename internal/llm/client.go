// Package llm provides the AI provider clients used for mentor analysis
// and chat, plus the response-extraction helpers.
package llm

import (
	"context"
	"fmt"
)

// Provider identifies an AI backend.
type Provider string

const (
	// ProviderGemini is the cloud provider; requires an API key.
	ProviderGemini Provider = "gemini"
	// ProviderOllama is the local provider; no secret needed.
	ProviderOllama Provider = "ollama"
)

// RequiresSecret reports whether the provider needs a stored API key
// before AI features unlock.
func (p Provider) RequiresSecret() bool {
	return p == ProviderGemini
}

// Valid reports whether p is a known provider tag.
func (p Provider) Valid() bool {
	return p == ProviderGemini || p == ProviderOllama
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client is the interface every AI provider implements. Generation runs
// on a minutes-scale budget (local inference on CPU is slow); callers
// pass a context carrying the deadline.
type Client interface {
	// Verify checks the credential/endpoint with a minimal request.
	Verify(ctx context.Context) error
	// Complete sends a one-shot prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat sends a message with prior history and returns the reply.
	Chat(ctx context.Context, system string, history []Message, message string) (string, error)
}

// Config holds the resolved provider selection for constructing a
// client.
type Config struct {
	Provider  Provider
	APIKey    string
	Model     string
	OllamaURL string
}

// ModelOrDefault resolves the model name, falling back to the
// provider's default when unset.
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOllama:
		return DefaultOllamaConfig().Model
	}
	return ""
}

// New constructs the client for the configured provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case ProviderOllama:
		return NewOllamaClient(OllamaConfig{BaseURL: cfg.OllamaURL, Model: cfg.Model}), nil
	}
	return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
}
