// Package roster turns raw showcase payloads into the display-ready
// character roster. All shape tolerance lives here: downstream code only
// ever sees the strict types below.
package roster

// Artifact equipment slots, in canonical render order.
const (
	SlotFlower  = "Flower"
	SlotPlume   = "Plume"
	SlotSands   = "Sands"
	SlotGoblet  = "Goblet"
	SlotCirclet = "Circlet"
)

// SlotOrder governs every per-slot iteration: build comparison, swap
// plans, exports. Never reorder.
var SlotOrder = []string{SlotFlower, SlotPlume, SlotSands, SlotGoblet, SlotCirclet}

// Stat is a numeric stat value that may be unresolvable. A zero delta and
// an unknown delta render differently, so the distinction is kept
// explicit instead of collapsing to 0.
type Stat struct {
	Value float64
	Known bool
}

// Known returns a resolved Stat.
func KnownStat(v float64) Stat { return Stat{Value: v, Known: true} }

// StatBlock is the tracked 7-stat snapshot shared by characters, AI
// targets and leaderboard benchmarks.
type StatBlock struct {
	HP       Stat
	ATK      Stat
	DEF      Stat
	EM       Stat
	ER       Stat
	CritRate Stat
	CritDMG  Stat
}

// StatKeys lists the StatBlock fields in display order.
var StatKeys = []string{"hp", "atk", "def", "em", "er", "cr", "cd"}

// Get returns the stat for one of the StatKeys.
func (b StatBlock) Get(key string) Stat {
	switch key {
	case "hp":
		return b.HP
	case "atk":
		return b.ATK
	case "def":
		return b.DEF
	case "em":
		return b.EM
	case "er":
		return b.ER
	case "cr":
		return b.CritRate
	case "cd":
		return b.CritDMG
	}
	return Stat{}
}

// Substat is one artifact substat. Value keeps the scanner's raw text so
// display can echo it verbatim; coerce when arithmetic is needed.
type Substat struct {
	Name  string
	Value string
}

// ArtifactRecord is one equipped artifact. Owned by its CharacterRecord.
type ArtifactRecord struct {
	Owner     string
	Slot      string
	Set       string
	Level     string
	MainStat  string
	MainValue string
	Substats  []Substat
}

// CharacterRecord is one scanned character. Immutable for the lifetime
// of a scan; a new scan replaces the roster wholesale.
type CharacterRecord struct {
	// Name is the raw token from the scan: a display name, or a
	// synthetic "ID<n>" marker when the scanner could not resolve it.
	Name        string
	DisplayName string
	Element     string
	Level       int
	Stats       StatBlock
	Artifacts   []ArtifactRecord
}

// ArtifactBySlot returns the artifact in the given slot, or nil when the
// slot is unequipped. At most one artifact per slot.
func (c *CharacterRecord) ArtifactBySlot(slot string) *ArtifactRecord {
	for i := range c.Artifacts {
		if c.Artifacts[i].Slot == slot {
			return &c.Artifacts[i]
		}
	}
	return nil
}
