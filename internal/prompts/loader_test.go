package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

func TestGet_ValidPrompt(t *testing.T) {
	resetCache()

	prompt, err := Get(PortfolioFile, "restructure-system")
	require.NoError(t, err)
	for _, field := range []string{"NAME", "TITLE", "CONTACT", "ABOUT", "EDUCATION", "SKILLS", "PROJECTS", "EXPERIENCE", "ACHIEVEMENTS"} {
		assert.Contains(t, prompt, field)
	}
}

func TestGet_InvalidFile(t *testing.T) {
	resetCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	resetCache()

	_, err := Get(PortfolioFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRender(t *testing.T) {
	resetCache()

	out, err := Render(WebsiteFile, "modify-component", map[string]string{
		"ComponentHTML": `<section class="hero">Hi</section>`,
		"ComponentType": "hero",
		"Instructions":  "make the heading larger",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `<section class="hero">Hi</section>`)
	assert.Contains(t, out, "make the heading larger")
	assert.NotContains(t, out, "{{.")
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	})
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	result := Format("{{.A}} {{.B}}", map[string]string{
		"A": "{{.B}}",
		"B": "x",
	})
	assert.Equal(t, "{{.B}} x", result)
}

func TestFormat_EmptyData(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
}

func TestCaching(t *testing.T) {
	resetCache()

	prompt1, err := Get(PortfolioFile, "parse-system")
	require.NoError(t, err)
	prompt2, err := Get(PortfolioFile, "parse-system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)

	cacheMu.RLock()
	_, cached := cache[PortfolioFile]
	cacheMu.RUnlock()
	assert.True(t, cached)
}
