package mentor

import (
	"context"
	"fmt"
	"sync/atomic"

	"artimentor/internal/leaderboard"
	"artimentor/internal/llm"
	"artimentor/internal/logging"
	"artimentor/internal/roster"
)

// ErrStale is returned when a newer analysis was started while this one
// was in flight; its result must be discarded, not shown.
var ErrStale = fmt.Errorf("analysis superseded by a newer request")

// AnalyzeRequest carries everything one analysis needs.
type AnalyzeRequest struct {
	Records []roster.CharacterRecord
	Target  string
	Context []leaderboard.Entry
	Notes   string
}

// AnalyzeResult is a parsed recommendation plus the raw AI text it came
// from, kept for exports and debugging.
type AnalyzeResult struct {
	Recommendation *Recommendation
	Raw            string
	Structured     bool
}

// Service runs build analyses and follow-up chats against an AI client.
type Service struct {
	client     llm.Client
	generation atomic.Uint64
}

// NewService creates a mentor service on top of an AI client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// Analyze prepares the inventory and benchmark context, queries the AI
// and parses its answer. Only the most recently started analysis may
// deliver a result; earlier in-flight ones resolve to ErrStale.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	gen := s.generation.Add(1)

	inv, err := PrepareInventory(req.Records, req.Target)
	if err != nil {
		return nil, err
	}

	prompt := BuildAnalysisPrompt(req.Target, inv, ContextSummary(req.Context), req.Notes)

	timer := logging.StartTimer(logging.CategoryMentor, "build analysis "+req.Target)
	raw, err := s.client.Complete(ctx, prompt)
	timer.Stop()
	if err != nil {
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}

	if s.generation.Load() != gen {
		logging.Mentor("discarding stale analysis for %s", req.Target)
		return nil, ErrStale
	}

	rec, structured := ParseRecommendation(raw)
	if !structured {
		logging.Get(logging.CategoryMentor).Warn("AI response for %s had no parseable JSON", req.Target)
	}
	return &AnalyzeResult{Recommendation: rec, Raw: raw, Structured: structured}, nil
}

// Chat continues a conversation about an analyzed build.
func (s *Service) Chat(ctx context.Context, target string, rec *Recommendation, benchmarks []leaderboard.Entry, history []llm.Message, message string) (string, error) {
	summary := ""
	if len(benchmarks) > 0 {
		summary = ContextSummary(benchmarks)
	}
	system := ChatSystemPrompt(target, rec, summary)

	timer := logging.StartTimer(logging.CategoryChat, "chat turn "+target)
	defer timer.Stop()

	reply, err := s.client.Chat(ctx, system, history, message)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return reply, nil
}
