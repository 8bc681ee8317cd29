package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObjectFencesAndTrailingComma(t *testing.T) {
	text := "prefix ```json {\"a\":1,} ``` suffix"
	obj, ok := ExtractObject(text)
	require.True(t, ok, "extraction should succeed")
	assert.Equal(t, float64(1), obj["a"])
}

func TestExtractObjectRepairsRawNewlines(t *testing.T) {
	text := "Here you go:\n```json\n{\"mentor_analysis\": \"line one\nline two\"}\n```"
	obj, ok := ExtractObject(text)
	require.True(t, ok, "raw newline inside string must be repaired, not fail")
	assert.Equal(t, "line one\nline two", obj["mentor_analysis"])
}

func TestExtractObjectSurroundingProse(t *testing.T) {
	text := "Some notes before. {\"final_stats\":{\"atk\":1500}} And after."
	obj, ok := ExtractObject(text)
	require.True(t, ok)
	final, ok := obj["final_stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1500), final["atk"])
}

func TestExtractObjectNestedTrailingCommas(t *testing.T) {
	text := `{"build":[{"slot":"Flower","set":"X",},],}`
	obj, ok := ExtractObject(text)
	require.True(t, ok)
	build, ok := obj["build"].([]any)
	require.True(t, ok)
	assert.Len(t, build, 1)
}

func TestExtractObjectNoJSON(t *testing.T) {
	for _, text := range []string{"", "no structure here", "``` ```", "} {"} {
		obj, ok := ExtractObject(text)
		assert.False(t, ok, "input %q must report failure", text)
		assert.Nil(t, obj)
	}
}

func TestExtractObjectEscapedQuotesInStrings(t *testing.T) {
	// The brace scanner must not be confused by escaped quotes.
	text := `{"note": "he said \"hi\"\nand left"}`
	obj, ok := ExtractObject(text)
	require.True(t, ok)
	assert.Equal(t, "he said \"hi\"\nand left", obj["note"])
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "plain text", StripFences("```json\nplain text\n```"))
	assert.Equal(t, "untouched", StripFences("untouched"))
}
