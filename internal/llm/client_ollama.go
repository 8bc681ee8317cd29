package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"artimentor/internal/logging"
)

// OllamaClient implements Client for a local Ollama daemon. No API key:
// selecting this provider is enough to unlock AI features.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// OllamaConfig holds configuration for the local provider.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultOllamaConfig returns sensible defaults. Local CPU inference can
// take minutes per response, so the budget is generous.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL: "http://localhost:11434",
		Model:   "mistral",
		Timeout: 10 * time.Minute,
	}
}

// NewOllamaClient creates a client, filling empty fields from defaults.
func NewOllamaClient(config OllamaConfig) *OllamaClient {
	defaults := DefaultOllamaConfig()
	if strings.TrimSpace(config.BaseURL) == "" {
		config.BaseURL = defaults.BaseURL
	}
	if strings.TrimSpace(config.Model) == "" {
		config.Model = defaults.Model
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	return &OllamaClient{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		model:      config.Model,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Verify probes the daemon's tag listing; reachability is the only
// requirement for the local provider.
func (o *OllamaClient) Verify(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable at %s: %w", o.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama status check returned %d", resp.StatusCode)
	}
	return nil
}

func (o *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "ollama.Complete")
	defer timer.Stop()

	payload := map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
	}
	var result struct {
		Response string `json:"response"`
	}
	if err := o.post(ctx, "/api/generate", payload, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}

func (o *OllamaClient) Chat(ctx context.Context, system string, history []Message, message string) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "ollama.Chat")
	defer timer.Stop()

	messages := make([]map[string]string, 0, len(history)+2)
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	for _, msg := range history {
		messages = append(messages, map[string]string{"role": msg.Role, "content": msg.Content})
	}
	messages = append(messages, map[string]string{"role": "user", "content": message})

	payload := map[string]any{
		"model":    o.model,
		"messages": messages,
		"stream":   false,
	}
	var result struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := o.post(ctx, "/api/chat", payload, &result); err != nil {
		return "", err
	}
	return result.Message.Content, nil
}

func (o *OllamaClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("Ollama request to %s failed: %v", path, err)
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode ollama response: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
