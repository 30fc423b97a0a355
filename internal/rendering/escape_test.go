package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Senior Backend Engineer", "Senior Backend Engineer"},
		{"backslash", `C:\dev`, `C:\textbackslash{}dev`},
		{"braces", "{x}", `\{x\}`},
		{"dollar and percent", "$5 or 10%", `\$5 or 10\%`},
		{"ampersand", "R&D", `R\&D`},
		{"hash", "C#", `C\#`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"underscore", "snake_case", `snake\_case`},
		{"tilde", "~/code", `\textasciitilde{}/code`},
		{"unicode untouched", "Zoë Müller", "Zoë Müller"},
		{"mixed", "Q&A: 100% of_users", `Q\&A: 100\% of\_users`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeURL(t *testing.T) {
	assert.Equal(t, "https://ada.dev/a_b", EscapeURL("https://ada.dev/a_b"))
	assert.Equal(t, `https://ada.dev/\#about`, EscapeURL("https://ada.dev/#about"))
	assert.Equal(t, `https://ada.dev/x\%20y`, EscapeURL("https://ada.dev/x%20y"))
	assert.Equal(t, "https://ada.dev/a%20b", EscapeURL("https://ada.dev/a b"))
}
