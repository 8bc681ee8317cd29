package assets

import (
	"io/fs"
	"path"

	"artimentor/internal/roster"
)

// Slot image file names inside a set folder.
var slotFileNames = map[string]string{
	roster.SlotFlower:  "01_Flower",
	roster.SlotPlume:   "02_Plume",
	roster.SlotSands:   "03_Sands",
	roster.SlotGoblet:  "04_Goblet",
	roster.SlotCirclet: "05_Circlet",
}

// PlaceholderImage is returned when every candidate in a fallback chain
// misses.
const PlaceholderImage = "placeholder.png"

// SlotFileName returns the image file stem for a slot, defaulting to the
// flower when the slot is unrecognized.
func SlotFileName(slot string) string {
	if name, ok := slotFileNames[slot]; ok {
		return name
	}
	return slotFileNames[roster.SlotFlower]
}

// Resolver locates bundled images on an asset filesystem. Lookup
// failures never error; they walk the fallback chain and bottom out at
// the generic placeholder.
type Resolver struct {
	fsys fs.FS
}

func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// CharacterImage resolves the hero image for a character folder key:
// card first, icon as the alternate, placeholder last.
func (r *Resolver) CharacterImage(key string) string {
	if key != "" {
		for _, name := range []string{"card.png", "icon.png"} {
			candidate := path.Join("characters", key, name)
			if r.exists(candidate) {
				return candidate
			}
		}
	}
	return PlaceholderImage
}

// ArtifactImage resolves the image for a set folder key and slot. The
// per-slot file is tried first, then the set's flower (some sets only
// ship one render), then the placeholder.
func (r *Resolver) ArtifactImage(setKey, slot string) string {
	if setKey != "" {
		for _, stem := range []string{SlotFileName(slot), slotFileNames[roster.SlotFlower]} {
			candidate := path.Join("artifacts", setKey, stem+".png")
			if r.exists(candidate) {
				return candidate
			}
		}
	}
	return PlaceholderImage
}

func (r *Resolver) exists(name string) bool {
	if r.fsys == nil {
		return false
	}
	_, err := fs.Stat(r.fsys, name)
	return err == nil
}
