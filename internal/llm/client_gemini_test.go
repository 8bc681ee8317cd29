package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiRoleMapping(t *testing.T) {
	cases := []struct {
		in   string
		want genai.Role
	}{
		{"assistant", genai.RoleModel},
		{"user", genai.RoleUser},
		{"", genai.RoleUser},
		{"system", genai.RoleUser},
	}
	for _, c := range cases {
		if got := geminiRole(c.in); got != c.want {
			t.Errorf("geminiRole(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
