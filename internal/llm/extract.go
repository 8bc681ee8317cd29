package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model responses nominally contain one JSON object but routinely arrive
// wrapped in markdown fences, surrounded by prose, with trailing commas,
// or with raw newlines inside string values. ExtractObject repairs what
// it can and reports failure instead of erroring: callers fall back to
// showing the raw text.

var (
	fenceRe         = regexp.MustCompile("```json|```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractObject returns the parsed JSON object embedded in text, or
// (nil, false) when no parseable object exists. Never panics.
func ExtractObject(text string) (map[string]any, bool) {
	repaired, ok := ExtractRaw(text)
	if !ok {
		return nil, false
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}

// ExtractRaw returns the repaired JSON slice of text without parsing it.
func ExtractRaw(text string) (string, bool) {
	cleaned := strings.TrimSpace(StripFences(text))
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	slice := cleaned[start : end+1]
	slice = trailingCommaRe.ReplaceAllString(slice, "$1")
	return repairStringLiterals(slice), true
}

// StripFences removes markdown code-fence markers. Used both before
// extraction and on the raw-text fallback path.
func StripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}

// repairStringLiterals walks the input tracking whether the cursor is
// inside a quoted string (respecting backslash escapes) and replaces
// literal newlines found inside strings with an escaped \n. Multi-line
// prose embedded unescaped in a JSON string value is the most common
// model output defect.
func repairStringLiterals(input string) string {
	var out strings.Builder
	out.Grow(len(input))
	inString := false
	escaped := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
				out.WriteByte(ch)
			case ch == '\\':
				escaped = true
				out.WriteByte(ch)
			case ch == '"':
				inString = false
				out.WriteByte(ch)
			case ch == '\n' || ch == '\r':
				out.WriteString(`\n`)
			default:
				out.WriteByte(ch)
			}
			continue
		}
		if ch == '"' {
			inString = true
		}
		out.WriteByte(ch)
	}
	return out.String()
}
