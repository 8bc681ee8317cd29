// Package assets derives filesystem-safe keys for bundled character and
// artifact-set imagery, and resolves images with a fallback chain.
package assets

import (
	"regexp"
	"strings"
)

// Set names whose derived key would not match the shipped folder name:
// apostrophes, historical typos, spelling fixes. Checked before the
// generic strip rule.
var specialSetKeys = map[string]string{
	"Finale of the deep galeries":  "Finale_of_the_Deep_Galleries",
	"Finale of the Deep Galleries": "Finale_of_the_Deep_Galleries",
}

// Character names whose folder key is not a plain strip of the display
// name (multi-word names collapse without separators).
var specialCharacterKeys = map[string]string{
	"Raiden Shogun":      "RaidenShogun",
	"Arataki Itto":       "AratakiItto",
	"Sangonomiya Kokomi": "SangonomiyaKokomi",
	"Kaedehara Kazuha":   "KaedeharaKazuha",
	"Kuki Shinobu":       "KukiShinobu",
	"Yun Jin":            "YunJin",
	"Hu Tao":             "HuTao",
	"Hu Tao (Trial)":     "HuTao(Trial)",
	"Kamisato Ayaka":     "KamisatoAyaka",
	"Kamisato Ayato":     "KamisatoAyato",
	"Kujou Sara":         "KujouSara",
	"Mavuika":            "Mavuika",
}

var (
	characterStripRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
	setStripRe       = regexp.MustCompile(`[^a-zA-Z0-9- ]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// CharacterKey maps a display name to its asset folder key. Total and
// deterministic: unmapped input still yields a key; whether an asset
// exists there is the caller's problem.
func CharacterKey(name string) string {
	if name == "" {
		return ""
	}
	if key, ok := specialCharacterKeys[name]; ok {
		return key
	}
	return characterStripRe.ReplaceAllString(name, "")
}

// SetKey maps a free-text artifact set name to its asset folder key.
func SetKey(setName string) string {
	if setName == "" {
		return "Unknown_Set"
	}
	if key, ok := specialSetKeys[setName]; ok {
		return key
	}
	cleaned := strings.ReplaceAll(setName, "'", "")
	cleaned = setStripRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
	return strings.ReplaceAll(cleaned, " ", "_")
}
