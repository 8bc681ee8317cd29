package roster

import (
	"encoding/json"
	"fmt"
)

// RawCharacter is one scan row exactly as the showcase pipeline delivers
// it: a loosely-typed stat map plus artifact maps. Key casing and value
// types vary between payload generations, so everything funnels through
// Normalize before any other package sees it.
type RawCharacter struct {
	Stats     map[string]any   `json:"stats"`
	Artifacts []map[string]any `json:"artifacts"`
}

// DecodeRoster parses a raw scan payload ("data" array) into raw rows.
func DecodeRoster(data []byte) ([]RawCharacter, error) {
	var rows []RawCharacter
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode scan payload: %w", err)
	}
	return rows, nil
}

// Normalize converts raw scan rows into the strict roster types,
// resolving display names and elements through the reference table.
// Rows without a character token are dropped.
func Normalize(rows []RawCharacter, table *ReferenceTable) []CharacterRecord {
	records := make([]CharacterRecord, 0, len(rows))
	for _, row := range rows {
		name := stringField(row.Stats, "Character", "character", "name")
		if name == "" {
			continue
		}
		record := CharacterRecord{
			Name:        name,
			DisplayName: table.ResolveDisplayName(name),
			Element:     table.ResolveElement(name, stringField(row.Stats, "Element", "element")),
			Level:       int(Coerce(field(row.Stats, "Level", "level")).Value),
			Stats: StatBlock{
				HP:       Coerce(field(row.Stats, "HP", "hp")),
				ATK:      Coerce(field(row.Stats, "ATK", "atk")),
				DEF:      Coerce(field(row.Stats, "DEF", "def")),
				EM:       Coerce(field(row.Stats, "EM", "em")),
				ER:       Coerce(field(row.Stats, "ER%", "ER", "er")),
				CritRate: Coerce(field(row.Stats, "Crit_Rate%", "Crit_Rate", "cr")),
				CritDMG:  Coerce(field(row.Stats, "Crit_DMG%", "Crit_DMG", "cd")),
			},
		}
		for _, art := range row.Artifacts {
			record.Artifacts = append(record.Artifacts, normalizeArtifact(art, name))
		}
		records = append(records, record)
	}
	return records
}

func normalizeArtifact(art map[string]any, owner string) ArtifactRecord {
	record := ArtifactRecord{
		Owner:     stringField(art, "Character", "owner", "Current_Owner"),
		Slot:      stringField(art, "Slot", "slot"),
		Set:       stringField(art, "Set", "set", "set_name"),
		Level:     stringField(art, "Level", "level"),
		MainStat:  stringField(art, "Main_Stat", "main_stat"),
		MainValue: stringField(art, "Main_Value", "main_value"),
	}
	if record.Owner == "" {
		record.Owner = owner
	}
	for i := 1; i <= 4; i++ {
		name := stringField(art, fmt.Sprintf("Sub%d", i))
		if name == "" {
			continue
		}
		record.Substats = append(record.Substats, Substat{
			Name:  name,
			Value: stringField(art, fmt.Sprintf("Sub%d_Val", i)),
		})
	}
	return record
}

// field returns the first present key, tolerating the casing drift
// between payload generations.
func field(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(m map[string]any, keys ...string) string {
	switch v := field(m, keys...).(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
