package main

import (
	"context"
	"fmt"
	"os"

	"artimentor/internal/llm"
	"artimentor/internal/store"
)

// geminiKeyEnv lets CI and one-off runs skip `mentor auth set`.
const geminiKeyEnv = "GEMINI_API_KEY"

// buildClientConfig assembles the AI client config from user config and
// the credential store.
func buildClientConfig(db *store.LocalStore) (llm.Config, error) {
	provider := llm.Provider(userConfig.GetProvider())
	if !provider.Valid() {
		return llm.Config{}, fmt.Errorf("unknown provider %q in config", userConfig.GetProvider())
	}

	cfg := llm.Config{
		Provider:  provider,
		Model:     userConfig.Model,
		OllamaURL: userConfig.GetOllamaURL(),
	}

	if provider.RequiresSecret() {
		key, err := db.GetCredential(string(provider))
		if err != nil {
			return llm.Config{}, err
		}
		if key == "" {
			key = os.Getenv(geminiKeyEnv)
		}
		if key == "" {
			return llm.Config{}, fmt.Errorf("no API key for %s; run: mentor auth set", provider)
		}
		cfg.APIKey = key
	}
	return cfg, nil
}

// newLLMClient builds the configured AI client.
func newLLMClient(ctx context.Context, db *store.LocalStore) (llm.Client, error) {
	cfg, err := buildClientConfig(db)
	if err != nil {
		return nil, err
	}
	return llm.New(ctx, cfg)
}
