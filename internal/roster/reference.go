package roster

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed characters.yaml
var charactersYAML []byte

// ReferenceTable maps opaque numeric avatar ids and raw names to
// canonical display names and elements. Pure lookup, no state beyond the
// parsed table.
type ReferenceTable struct {
	nameByID      map[string]string
	elementByID   map[string]string
	elementByName map[string]string
}

type referenceFile struct {
	Characters []struct {
		ID      int    `yaml:"id"`
		Name    string `yaml:"name"`
		Element string `yaml:"element"`
	} `yaml:"characters"`
}

var (
	refOnce  sync.Once
	refTable *ReferenceTable
	refErr   error
)

// Reference returns the process-wide reference table parsed from the
// embedded dataset.
func Reference() (*ReferenceTable, error) {
	refOnce.Do(func() {
		refTable, refErr = parseReference(charactersYAML)
	})
	return refTable, refErr
}

func parseReference(raw []byte) (*ReferenceTable, error) {
	var file referenceFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse character reference table: %w", err)
	}
	table := &ReferenceTable{
		nameByID:      make(map[string]string, len(file.Characters)),
		elementByID:   make(map[string]string, len(file.Characters)),
		elementByName: make(map[string]string, len(file.Characters)),
	}
	for _, entry := range file.Characters {
		if entry.ID == 0 || entry.Name == "" {
			continue
		}
		id := fmt.Sprintf("%d", entry.ID)
		table.nameByID[id] = entry.Name
		if entry.Element != "" {
			table.elementByID[id] = entry.Element
			table.elementByName[entry.Name] = entry.Element
		}
	}
	return table, nil
}

var digitsRe = regexp.MustCompile(`\d+`)

// NameByID resolves a numeric avatar id to its canonical display name.
func (t *ReferenceTable) NameByID(id int) (string, bool) {
	name, ok := t.nameByID[fmt.Sprintf("%d", id)]
	return name, ok
}

// ResolveDisplayName maps a raw character token to its display name.
// Synthetic "ID<n>" tokens are looked up by their embedded id; anything
// else (including ids absent from the table) is returned unchanged.
func (t *ReferenceTable) ResolveDisplayName(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "ID") {
		if digits := digitsRe.FindString(raw); digits != "" {
			if name, ok := t.nameByID[digits]; ok {
				return name
			}
		}
	}
	return raw
}

// ResolveElement finds the element for a raw character token: embedded
// id first, then canonical name, then the payload's own element string
// validated against the closed element set.
func (t *ReferenceTable) ResolveElement(raw, fallback string) string {
	if raw == "" {
		return ""
	}
	if digits := digitsRe.FindString(raw); digits != "" {
		if element, ok := t.elementByID[digits]; ok {
			return element
		}
	}
	if element, ok := t.elementByName[raw]; ok {
		return element
	}
	return NormalizeElement(fallback)
}
