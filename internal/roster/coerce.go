package roster

import (
	"strconv"
	"strings"
)

// Coerce converts a loosely-typed stat field into a Stat. Scan payloads
// and AI responses deliver numbers, numeric strings, and strings with
// formatting artifacts ("4,780", "46.6%", "+311"); anything that still
// fails to parse after stripping is unresolved, never 0.
func Coerce(value any) Stat {
	switch v := value.(type) {
	case nil:
		return Stat{}
	case float64:
		return KnownStat(v)
	case float32:
		return KnownStat(float64(v))
	case int:
		return KnownStat(float64(v))
	case int64:
		return KnownStat(float64(v))
	case string:
		return coerceString(v)
	}
	return Stat{}
}

func coerceString(s string) Stat {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return Stat{}
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Stat{}
	}
	return KnownStat(parsed)
}
