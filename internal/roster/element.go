package roster

import "strings"

// The seven playable elements. Anything outside this set (including
// "N/A" placeholders from the scanner) normalizes to empty, which
// renders without an element glyph.
var allowedElements = map[string]bool{
	"Pyro":    true,
	"Hydro":   true,
	"Electro": true,
	"Cryo":    true,
	"Dendro":  true,
	"Anemo":   true,
	"Geo":     true,
}

// NormalizeElement title-cases a raw element string and validates it
// against the closed element set. Returns "" for unknown values.
func NormalizeElement(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "n/a") {
		return ""
	}
	lower := strings.ToLower(trimmed)
	normalized := strings.ToUpper(lower[:1]) + lower[1:]
	if !allowedElements[normalized] {
		return ""
	}
	return normalized
}
