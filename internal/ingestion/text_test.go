package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n\t\n  ", ""},
		{"collapses spaces", "Go,   PostgreSQL\t\tDocker", "Go, PostgreSQL Docker"},
		{"line endings", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"blank runs", "Summary\n\n\n\n\nSkills", "Summary\n\nSkills"},
		{"heading kept", "   ## Experience  ", "## Experience"},
		{"indentation kept", "Acme\n    Senior   Engineer", "Acme\n    Senior Engineer"},
		{"dash bullet", "- Built   the API", "- Built   the API"},
		{"glyph bullets", "  •   Built   billing\n· Led   migrations\n▪ Cut  costs", "•   Built   billing\n· Led   migrations\n▪ Cut  costs"},
		{"unicode", "Zoë   Müller 🚀", "Zoë Müller 🚀"},
		{
			"resume layout",
			"Ada Lovelace\r\nada@example.com   |   +1 555 0100\r\n\r\n\r\n\r\nSKILLS\r\nGo,   PostgreSQL\r\n",
			"Ada Lovelace\nada@example.com | +1 555 0100\n\nSKILLS\nGo, PostgreSQL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	once := CleanText("Ada   Lovelace\n\n\n\n  • Built   things\r\nSKILLS")
	assert.Equal(t, once, CleanText(once))
}
