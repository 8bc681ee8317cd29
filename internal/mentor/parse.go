package mentor

import (
	"fmt"
	"strings"

	"artimentor/internal/llm"
)

// ParseRecommendation extracts a structured recommendation from loosely
// formatted AI output. The bool result reports whether structured JSON
// was found; when it was not, the raw text is preserved as the analysis
// so the user still sees something.
func ParseRecommendation(text string) (*Recommendation, bool) {
	obj, ok := llm.ExtractObject(text)
	if !ok {
		return &Recommendation{
			MentorAnalysis: strings.TrimSpace(llm.StripFences(text)),
		}, false
	}

	rec := &Recommendation{
		MentorAnalysis: unescapeAnalysis(asString(obj["mentor_analysis"])),
	}

	if pieces, ok := obj["recommended_build"].([]any); ok {
		for _, p := range pieces {
			m, ok := p.(map[string]any)
			if !ok {
				continue
			}
			rec.RecommendedBuild = append(rec.RecommendedBuild, BuildPiece{
				Slot:      asString(m["slot"]),
				Name:      asString(m["name"]),
				Set:       asString(m["set"]),
				MainStat:  asString(m["main_stat"]),
				MainValue: asString(m["main_value"]),
				Substats:  asStrings(m["substats"]),
				Reason:    asString(m["reason"]),
			})
		}
	}

	if stats, ok := obj["final_stats"].(map[string]any); ok {
		rec.FinalStats = make(map[string]string, len(stats))
		for key, v := range stats {
			rec.FinalStats[key] = asString(v)
		}
	}

	if plan, ok := obj["swap_plan"].([]any); ok {
		for _, p := range plan {
			m, ok := p.(map[string]any)
			if !ok {
				continue
			}
			rec.SwapPlan = append(rec.SwapPlan, SwapStep{
				Slot:   asString(m["slot"]),
				From:   asString(m["from"]),
				To:     asString(m["to"]),
				Reason: asString(m["reason"]),
			})
		}
	}

	rec.PriorityList = asStrings(obj["priority_list"])
	return rec, true
}

// unescapeAnalysis turns surviving literal \n sequences into real
// newlines so the analysis renders as paragraphs.
func unescapeAnalysis(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.TrimSpace(s)
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
