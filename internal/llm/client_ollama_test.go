package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if stream, ok := payload["stream"].(bool); !ok || stream {
			t.Error("expected stream=false")
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "analysis text"})
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL})
	got, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "analysis text" {
		t.Errorf("got %q", got)
	}
}

func TestOllamaChatSendsHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		// system + 2 history turns + new message
		if len(payload.Messages) != 4 {
			t.Errorf("expected 4 messages, got %d", len(payload.Messages))
		}
		if payload.Messages[0]["role"] != "system" {
			t.Errorf("first message should be system, got %s", payload.Messages[0]["role"])
		}
		json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"content": "reply"}})
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL})
	history := []Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	got, err := client.Chat(context.Background(), "be helpful", history, "next question")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got != "reply" {
		t.Errorf("got %q", got)
	}
}

func TestOllamaVerifyUnreachable(t *testing.T) {
	client := NewOllamaClient(OllamaConfig{BaseURL: "http://127.0.0.1:1"})
	if err := client.Verify(context.Background()); err == nil {
		t.Error("expected error for unreachable daemon")
	}
}

func TestOllamaErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL})
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
