// Package mentor turns roster scans, leaderboard benchmarks and AI
// responses into build recommendations and comparison tables.
package mentor

import (
	"fmt"
	"strconv"
	"strings"

	"artimentor/internal/leaderboard"
	"artimentor/internal/roster"
)

// DefaultSwapReason is used when a recommended piece carries no reason.
const DefaultSwapReason = "Aligns with optimal stat distribution"

// BuildPiece is one artifact in a build, current or recommended.
type BuildPiece struct {
	Slot      string   `json:"slot"`
	Name      string   `json:"name,omitempty"`
	Set       string   `json:"set"`
	MainStat  string   `json:"main_stat"`
	MainValue string   `json:"main_value"`
	Substats  []string `json:"substats,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Owner     string   `json:"owner,omitempty"`
}

// Recommendation is a parsed AI build analysis.
type Recommendation struct {
	RecommendedBuild []BuildPiece      `json:"recommended_build"`
	FinalStats       map[string]string `json:"final_stats"`
	MentorAnalysis   string            `json:"mentor_analysis"`
	SwapPlan         []SwapStep        `json:"swap_plan,omitempty"`
	PriorityList     []string          `json:"priority_list,omitempty"`
}

// SwapStep is one slot change in a swap plan.
type SwapStep struct {
	Slot   string `json:"slot"`
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// CurrentBuild maps a character's equipped artifacts by slot. Every slot
// in the canonical order has an entry; nil means nothing equipped there.
func CurrentBuild(char *roster.CharacterRecord) map[string]*BuildPiece {
	build := make(map[string]*BuildPiece, len(roster.SlotOrder))
	for _, slot := range roster.SlotOrder {
		build[slot] = nil
		art := char.ArtifactBySlot(slot)
		if art == nil {
			continue
		}
		piece := &BuildPiece{
			Slot:      art.Slot,
			Set:       art.Set,
			MainStat:  art.MainStat,
			MainValue: art.MainValue,
			Owner:     art.Owner,
		}
		for _, sub := range art.Substats {
			s := sub.Name
			if sub.Value != "" {
				s += "+" + sub.Value
			}
			piece.Substats = append(piece.Substats, s)
		}
		build[slot] = piece
	}
	return build
}

// RecommendedBySlot indexes a recommendation's pieces by slot. Slots the
// AI made no suggestion for map to nil.
func (r *Recommendation) RecommendedBySlot() map[string]*BuildPiece {
	build := make(map[string]*BuildPiece, len(roster.SlotOrder))
	for _, slot := range roster.SlotOrder {
		build[slot] = nil
	}
	for i := range r.RecommendedBuild {
		piece := &r.RecommendedBuild[i]
		if _, ok := build[piece.Slot]; ok {
			build[piece.Slot] = piece
		}
	}
	return build
}

// StatRow compares one stat across current, target and benchmark values.
// Pointers are nil where a side is unknown; the row then shows a dash
// instead of a misleading zero.
type StatRow struct {
	Key       string
	Label     string
	Percent   bool
	Current   *float64
	Target    *float64
	Delta     *float64
	Benchmark *float64
	Gap       *float64
}

var statRowMeta = []struct {
	key     string
	label   string
	percent bool
}{
	{"hp", "HP", false},
	{"atk", "ATK", false},
	{"def", "DEF", false},
	{"em", "EM", false},
	{"er", "ER", true},
	{"cr", "CR", true},
	{"cd", "CD", true},
}

// StatRows builds the current-vs-target comparison for every canonical
// stat. finalStats may be nil when no analysis has run yet.
func StatRows(current roster.StatBlock, finalStats map[string]string) []StatRow {
	rows := make([]StatRow, 0, len(statRowMeta))
	for _, meta := range statRowMeta {
		row := StatRow{Key: meta.key, Label: meta.label, Percent: meta.percent}

		if stat := current.Get(meta.key); stat.Known {
			v := stat.Value
			row.Current = &v
		}
		if target, ok := parseStatString(finalStats[meta.key]); ok {
			row.Target = &target
		}
		if row.Current != nil && row.Target != nil {
			delta := *row.Target - *row.Current
			row.Delta = &delta
		}
		rows = append(rows, row)
	}
	return rows
}

// BenchmarkRows augments stat rows with leaderboard averages and the gap
// from the current build. Entries with a missing stat contribute zero to
// the average, matching how the benchmark data itself reports absences.
func BenchmarkRows(rows []StatRow, entries []leaderboard.Entry) []StatRow {
	if len(entries) == 0 {
		return rows
	}

	totals := make(map[string]float64, len(statRowMeta))
	for _, e := range entries {
		totals["hp"] += e.HP
		totals["atk"] += e.ATK
		totals["def"] += e.DEF
		totals["em"] += e.EM
		totals["er"] += e.ER
		totals["cr"] += e.CritRate
		totals["cd"] += e.CritDMG
	}

	count := float64(len(entries))
	out := make([]StatRow, len(rows))
	for i, row := range rows {
		bench := totals[row.Key] / count
		row.Benchmark = &bench
		if row.Current != nil {
			gap := bench - *row.Current
			row.Gap = &gap
		}
		out[i] = row
	}
	return out
}

// describePiece renders a piece the way swap plans reference it.
func describePiece(piece *BuildPiece) string {
	if piece == nil {
		return "None equipped"
	}
	set := piece.Set
	if set == "" {
		set = "Unknown Set"
	}
	mainStat := piece.MainStat
	if mainStat == "" {
		mainStat = "Main"
	}
	return strings.TrimSpace(fmt.Sprintf("%s - %s %s", set, mainStat, piece.MainValue))
}

// samePiece reports whether the recommendation matches what is already
// equipped, judged by set, main stat and main value.
func samePiece(current, recommended *BuildPiece) bool {
	if current == nil || recommended == nil {
		return false
	}
	return current.Set == recommended.Set &&
		current.MainStat == recommended.MainStat &&
		current.MainValue == recommended.MainValue
}

// SwapPlanFor returns the swap plan to display: the AI's explicit plan
// verbatim when present, otherwise one derived from the recommended
// build. Derived steps skip slots where the recommended piece is the one
// already equipped.
func (r *Recommendation) SwapPlanFor(char *roster.CharacterRecord) []SwapStep {
	if len(r.SwapPlan) > 0 {
		return r.SwapPlan
	}
	if len(r.RecommendedBuild) == 0 {
		return nil
	}

	current := CurrentBuild(char)
	recommended := r.RecommendedBySlot()

	var plan []SwapStep
	for _, slot := range roster.SlotOrder {
		rec := recommended[slot]
		if rec == nil || samePiece(current[slot], rec) {
			continue
		}
		reason := rec.Reason
		if reason == "" {
			reason = DefaultSwapReason
		}
		plan = append(plan, SwapStep{
			Slot:   slot,
			From:   describePiece(current[slot]),
			To:     describePiece(rec),
			Reason: reason,
		})
	}
	return plan
}

// parseStatString reads a numeric stat out of loosely formatted AI
// output ("1500", "1,500", "46.6%").
func parseStatString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
