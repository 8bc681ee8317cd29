package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"artimentor/internal/logging"
)

// DefaultGeminiModel balances speed and quality for build analysis.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements Client over the official Gemini SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini client for the given API key.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// geminiRole maps a chat history role onto the SDK's role type;
// anything that is not an assistant turn counts as the user.
func geminiRole(role string) genai.Role {
	if role == "assistant" {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Verify sends a minimal generation request to prove the key works.
func (g *GeminiClient) Verify(ctx context.Context) error {
	_, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text("Hello"), nil)
	if err != nil {
		return fmt.Errorf("invalid API key: %w", err)
	}
	return nil
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "gemini.Complete")
	defer timer.Stop()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("Gemini generation failed: %v", err)
		return "", fmt.Errorf("AI error: %w", err)
	}
	return resp.Text(), nil
}

func (g *GeminiClient) Chat(ctx context.Context, system string, history []Message, message string) (string, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "gemini.Chat")
	defer timer.Stop()

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, genai.NewContentFromText(msg.Content, geminiRole(msg.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("Gemini chat failed: %v", err)
		return "", fmt.Errorf("AI error: %w", err)
	}
	return resp.Text(), nil
}
