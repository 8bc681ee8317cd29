package roster

import (
	"testing"
)

func loadTable(t *testing.T) *ReferenceTable {
	t.Helper()
	table, err := Reference()
	if err != nil {
		t.Fatalf("Reference() failed: %v", err)
	}
	return table
}

func TestResolveDisplayName(t *testing.T) {
	table := loadTable(t)

	tests := []struct {
		raw  string
		want string
	}{
		{"ID10000046", "Hu Tao"},
		{"ID10000052", "Raiden Shogun"},
		{"Hu Tao", "Hu Tao"},
		{"ID99999999", "ID99999999"}, // absent from table: unchanged
		{"", ""},
	}
	for _, tt := range tests {
		if got := table.ResolveDisplayName(tt.raw); got != tt.want {
			t.Errorf("ResolveDisplayName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestResolveElement(t *testing.T) {
	table := loadTable(t)

	if got := table.ResolveElement("ID10000046", ""); got != "Pyro" {
		t.Errorf("id lookup: got %q, want Pyro", got)
	}
	if got := table.ResolveElement("Kamisato Ayaka", ""); got != "Cryo" {
		t.Errorf("name lookup: got %q, want Cryo", got)
	}
	// Unknown token falls through to the payload's own element string.
	if got := table.ResolveElement("Somebody", "pyro"); got != "Pyro" {
		t.Errorf("fallback: got %q, want Pyro", got)
	}
	if got := table.ResolveElement("Somebody", "N/A"); got != "" {
		t.Errorf("n/a fallback: got %q, want empty", got)
	}
}

func TestNormalizeElement(t *testing.T) {
	for _, element := range []string{"Pyro", "Hydro", "Electro", "Cryo", "Dendro", "Anemo", "Geo"} {
		variants := []string{element, "  " + element + "  "}
		for _, v := range variants {
			if got := NormalizeElement(v); got != element {
				t.Errorf("NormalizeElement(%q) = %q, want %q", v, got, element)
			}
		}
	}
	casings := map[string]string{
		"PYRO":  "Pyro",
		"hydro": "Hydro",
		"GeO":   "Geo",
	}
	for in, want := range casings {
		if got := NormalizeElement(in); got != want {
			t.Errorf("NormalizeElement(%q) = %q, want %q", in, got, want)
		}
	}
	for _, junk := range []string{"", "n/a", "N/A", "Quantum", "unknown", "  "} {
		if got := NormalizeElement(junk); got != "" {
			t.Errorf("NormalizeElement(%q) = %q, want empty", junk, got)
		}
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in    any
		want  float64
		known bool
	}{
		{1500.0, 1500, true},
		{"4780", 4780, true},
		{"4,780", 4780, true},
		{"46.6%", 46.6, true},
		{"+311", 311, true},
		{"-12.5", -12.5, true},
		{"", 0, false},
		{nil, 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got := Coerce(tt.in)
		if got.Known != tt.known || (tt.known && got.Value != tt.want) {
			t.Errorf("Coerce(%v) = %+v, want value=%v known=%v", tt.in, got, tt.want, tt.known)
		}
	}
}

func TestNormalizeRoster(t *testing.T) {
	table := loadTable(t)

	rows := []RawCharacter{
		{
			Stats: map[string]any{
				"Character":   "Hu Tao",
				"Level":       90.0,
				"HP":          33000.0,
				"ATK":         "1,000",
				"DEF":         876.0,
				"EM":          120.0,
				"ER%":         "110.5",
				"Crit_Rate%":  77.1,
				"Crit_DMG%":   "211.4",
				"Element":     "Pyro",
			},
			Artifacts: []map[string]any{
				{
					"Slot":       "Flower",
					"Set":        "Gladiator's Finale",
					"Main_Stat":  "HP",
					"Main_Value": "4780",
					"Sub1":       "Crit Rate",
					"Sub1_Val":   3.9,
					"Sub2":       "",
					"Sub2_Val":   "",
				},
			},
		},
		{Stats: map[string]any{}}, // no character token: dropped
	}

	records := Normalize(rows, table)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	char := records[0]
	if char.DisplayName != "Hu Tao" || char.Element != "Pyro" {
		t.Errorf("unexpected identity: %q / %q", char.DisplayName, char.Element)
	}
	if !char.Stats.ATK.Known || char.Stats.ATK.Value != 1000 {
		t.Errorf("ATK coercion failed: %+v", char.Stats.ATK)
	}
	if len(char.Artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(char.Artifacts))
	}
	flower := char.ArtifactBySlot(SlotFlower)
	if flower == nil || flower.Set != "Gladiator's Finale" || flower.MainValue != "4780" {
		t.Errorf("unexpected flower artifact: %+v", flower)
	}
	if len(flower.Substats) != 1 || flower.Substats[0].Name != "Crit Rate" {
		t.Errorf("empty substat slots must be skipped: %+v", flower.Substats)
	}
	if char.ArtifactBySlot(SlotCirclet) != nil {
		t.Error("unequipped slot must resolve to nil")
	}
}
