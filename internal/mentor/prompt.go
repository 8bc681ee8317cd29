package mentor

import (
	"encoding/json"
	"fmt"
	"strings"

	"artimentor/internal/leaderboard"
	"artimentor/internal/roster"
)

// PoolPiece is one artifact offered to the AI, tagged with the character
// currently wearing it.
type PoolPiece struct {
	Slot         string   `json:"Slot"`
	Set          string   `json:"Set"`
	Level        string   `json:"Level,omitempty"`
	MainStat     string   `json:"Main_Stat"`
	MainValue    string   `json:"Main_Value"`
	Substats     []string `json:"Substats,omitempty"`
	CurrentOwner string   `json:"Current_Owner"`
}

// Inventory is the artifact pool for one analysis: the set the target
// character is built around and every matching piece across the roster.
type Inventory struct {
	TargetSet string
	Pool      []PoolPiece
}

// FindCharacter locates the target character in a roster by display
// name, falling back to the raw name token.
func FindCharacter(records []roster.CharacterRecord, target string) *roster.CharacterRecord {
	for i := range records {
		if records[i].DisplayName == target {
			return &records[i]
		}
	}
	for i := range records {
		if records[i].Name == target {
			return &records[i]
		}
	}
	return nil
}

// PrepareInventory determines the target set from the character's
// equipped artifacts (most pieces wins) and collects every artifact of
// that set across the whole roster.
func PrepareInventory(records []roster.CharacterRecord, target string) (*Inventory, error) {
	char := FindCharacter(records, target)
	if char == nil {
		return nil, fmt.Errorf("character %s not found in scan data", target)
	}
	if len(char.Artifacts) == 0 {
		return nil, fmt.Errorf("character %s has no artifacts equipped", target)
	}

	// Most-equipped set on the target character; first seen wins ties.
	counts := make(map[string]int)
	targetSet := ""
	best := 0
	for _, art := range char.Artifacts {
		counts[art.Set]++
		if counts[art.Set] > best {
			best = counts[art.Set]
			targetSet = art.Set
		}
	}

	inv := &Inventory{TargetSet: targetSet}
	for i := range records {
		owner := records[i].DisplayName
		if owner == "" {
			owner = records[i].Name
		}
		for _, art := range records[i].Artifacts {
			if art.Set != targetSet {
				continue
			}
			piece := PoolPiece{
				Slot:         art.Slot,
				Set:          art.Set,
				Level:        art.Level,
				MainStat:     art.MainStat,
				MainValue:    art.MainValue,
				CurrentOwner: owner,
			}
			for _, sub := range art.Substats {
				s := sub.Name
				if sub.Value != "" {
					s += "+" + sub.Value
				}
				piece.Substats = append(piece.Substats, s)
			}
			inv.Pool = append(inv.Pool, piece)
		}
	}
	return inv, nil
}

// ContextSummary condenses leaderboard entries into the stat targets
// handed to the AI.
func ContextSummary(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return "No leaderboard data available."
	}

	var hp, atk, def, em, er, cr, cd float64
	weaponCounts := make(map[string]int)
	for _, e := range entries {
		hp += e.HP
		atk += e.ATK
		def += e.DEF
		em += e.EM
		er += e.ER
		cr += e.CritRate
		cd += e.CritDMG
		if e.Weapon != "" {
			weaponCounts[e.Weapon]++
		}
	}
	n := float64(len(entries))

	topWeapon := "N/A"
	best := 0
	for weapon, count := range weaponCounts {
		if count > best || (count == best && weapon < topWeapon) {
			best = count
			topWeapon = weapon
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- LEADERBOARD CONTEXT (Top %d Players) ---\n", len(entries))
	b.WriteString("Average Stats Targets:\n")
	fmt.Fprintf(&b, "- HP: %.0f\n", hp/n)
	fmt.Fprintf(&b, "- ATK: %.0f\n", atk/n)
	fmt.Fprintf(&b, "- DEF: %.0f\n", def/n)
	fmt.Fprintf(&b, "- EM: %.0f\n", em/n)
	fmt.Fprintf(&b, "- ER: %.1f%%\n", er/n)
	fmt.Fprintf(&b, "- Crit Rate: %.1f%%\n", cr/n)
	fmt.Fprintf(&b, "- Crit DMG: %.1f%%\n", cd/n)
	fmt.Fprintf(&b, "\nTop Weapon: %s", topWeapon)
	return b.String()
}

// BenchmarkEntries flattens deep leaderboard rows into plain entries
// whose stats come from the ranked player's actual character build.
func BenchmarkEntries(rows []leaderboard.DeepRow) []leaderboard.Entry {
	entries := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		e := row.Entry
		stats := row.Character.Stats
		if stats.HP.Known {
			e.HP = stats.HP.Value
		}
		if stats.ATK.Known {
			e.ATK = stats.ATK.Value
		}
		if stats.DEF.Known {
			e.DEF = stats.DEF.Value
		}
		if stats.EM.Known {
			e.EM = stats.EM.Value
		}
		if stats.ER.Known {
			e.ER = stats.ER.Value
		}
		if stats.CritRate.Known {
			e.CritRate = stats.CritRate.Value
		}
		if stats.CritDMG.Known {
			e.CritDMG = stats.CritDMG.Value
		}
		entries = append(entries, e)
	}
	return entries
}

// BuildAnalysisPrompt assembles the optimization prompt for a target
// character: the benchmark summary, the constrained artifact pool and
// the required response schema.
func BuildAnalysisPrompt(target string, inv *Inventory, contextSummary, notes string) string {
	pool, _ := json.Marshal(inv.Pool)

	var b strings.Builder
	b.WriteString("You are a World-Class Genshin Impact Theorycrafting Engine.\n\n")

	b.WriteString("### OBJECTIVE\n")
	fmt.Fprintf(&b, "Mathematically optimize the artifact build for **%s** using ONLY the items provided in the user's inventory.\n", target)
	fmt.Fprintf(&b, "The user explicitly requires the set: **%s**.\n\n", inv.TargetSet)

	b.WriteString("### CONTEXT & BENCHMARKS\n")
	b.WriteString("Use the following Global Leaderboard data to determine the optimal stat distribution targets:\n")
	b.WriteString(contextSummary)
	b.WriteString("\n\n")

	if notes = strings.TrimSpace(notes); notes != "" {
		b.WriteString("### USER NOTES\n")
		b.WriteString(notes)
		b.WriteString("\n\n")
	}

	b.WriteString("### USER INVENTORY DATA\n")
	b.WriteString("**Constraint:** You are strictly forbidden from hallucinating artifacts. Select 5 items exclusively from the list below.\n")
	fmt.Fprintf(&b, "**Dataset:** %d pieces of %s:\n%s\n\n", len(inv.Pool), inv.TargetSet, pool)

	b.WriteString("### OUTPUT FORMAT\n")
	b.WriteString("You must return a valid JSON object strictly following this schema. Do not include markdown code blocks or additional text.\n\n")
	fmt.Fprintf(&b, `{
  "recommended_build": [
    {
      "slot": "Flower",
      "name": "Artifact Name or ID",
      "main_stat": "HP",
      "main_value": "4780",
      "substats": ["Crit Rate+3.9%%", "Crit DMG+20%%"],
      "set": "%[1]s",
      "reason": "Balances Crit ratio..."
    },
    ... (Plume, Sands, Goblet, Circlet)
  ],
  "final_stats": {
    "hp": "...",
    "atk": "...",
    "def": "...",
    "em": "...",
    "cr": "...",
    "cd": "...",
    "er": "..."
  },
  "mentor_analysis": "Detailed explanation of why this build is optimal and how it compares to the leaderboard benchmarks."
}`, inv.TargetSet)
	return b.String()
}

// ChatSystemPrompt frames a follow-up chat about an analyzed build.
func ChatSystemPrompt(target string, rec *Recommendation, contextSummary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a Genshin Impact build mentor advising on %s.\n", target)
	b.WriteString("Answer concisely and ground every claim in the build data below.\n\n")
	if rec != nil && rec.MentorAnalysis != "" {
		b.WriteString("### PREVIOUS ANALYSIS\n")
		b.WriteString(rec.MentorAnalysis)
		b.WriteString("\n\n")
	}
	if contextSummary != "" {
		b.WriteString("### BENCHMARKS\n")
		b.WriteString(contextSummary)
		b.WriteString("\n")
	}
	return b.String()
}
