package website

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-resume/internal/llm/llmtest"
	"github.com/jonathan/portfolio-resume/internal/types"
)

func sampleData() *types.EnrichedResumeData {
	return &types.EnrichedResumeData{
		Name:  "ada lovelace",
		Title: "Backend Developer",
		ContactInfo: map[string]string{
			"email":   "ada@example.com",
			"github":  "https://github.com/ada",
			"twitter": "@ada",
		},
		Skills: []types.SkillCategory{
			{Name: types.CategoryFrontend, Skills: []string{"React"}},
			{Name: types.CategoryBackend, Skills: []string{"Go"}},
		},
		Projects: []types.EnrichedProject{{
			Name:         "Engine <v2>",
			Description:  "Difference engine",
			Technologies: []string{"Go", "WASM"},
			GitHub:       "https://github.com/ada/engine",
		}},
		Experience: []types.EnrichedExperience{{Position: "SRE", Company: "Acme", Skills: []string{"Go"}}},
	}
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, "#00d4ff", ThemeFor("futuristic").Primary)
	assert.Equal(t, ThemePlayful, ThemeFor(" Playful ").Name)
	assert.Equal(t, ThemeProfessional, ThemeFor("brutalist").Name)
	assert.Equal(t, ThemeProfessional, ThemeFor("").Name)
	for _, name := range ThemeNames() {
		assert.Equal(t, name, ThemeFor(name).Name)
	}
}

func TestGenerate(t *testing.T) {
	site, err := Generate(sampleData(), "futuristic")
	require.NoError(t, err)

	assert.Contains(t, site.HTML, `<title>ada lovelace - Portfolio</title>`)
	assert.Contains(t, site.HTML, `<body class="futuristic">`)
	assert.Contains(t, site.HTML, `<div class="avatar">AD</div>`)
	assert.Contains(t, site.HTML, `<p class="title">Backend Developer</p>`)
	assert.Contains(t, site.HTML, DefaultAbout)
	assert.Contains(t, site.HTML, "Engine &lt;v2&gt;")
	assert.Contains(t, site.HTML, "Go, WASM")
	assert.Contains(t, site.HTML, `href="https://github.com/ada/engine"`)
	assert.Contains(t, site.HTML, `href="mailto:ada@example.com"`)
	assert.Contains(t, site.HTML, `<div class="skill-tag" data-component="skill-tag">React</div>`)
	assert.Contains(t, site.HTML, "No education data available")
	assert.Contains(t, site.HTML, stylesheetLink)
	assert.Contains(t, site.HTML, scriptTag)

	// Contacts: known keys first, then the rest.
	email := strings.Index(site.HTML, "<strong>Email:</strong>")
	github := strings.Index(site.HTML, "<strong>GitHub:</strong>")
	twitter := strings.Index(site.HTML, "<strong>Twitter:</strong>")
	assert.True(t, email < github && github < twitter)

	assert.Contains(t, site.CSS, "background-color: #0f0f23;")
	assert.Contains(t, site.CSS, "@keyframes glow")
	assert.NotContains(t, site.CSS, "@keyframes bounce")
	assert.Contains(t, site.JS, "/modify-component")
}

func TestGenerate_ThemeStyles(t *testing.T) {
	playful, err := Generate(sampleData(), "playful")
	require.NoError(t, err)
	assert.Contains(t, playful.CSS, "@keyframes bounce")

	plain, err := Generate(sampleData(), "unknown")
	require.NoError(t, err)
	assert.Contains(t, plain.HTML, `<body class="professional">`)
	assert.NotContains(t, plain.CSS, "@keyframes")
}

func TestGenerate_EscapesUnsafeLinks(t *testing.T) {
	data := sampleData()
	data.Projects[0].Demo = "javascript:alert(1)"
	site, err := Generate(data, "")
	require.NoError(t, err)
	assert.NotContains(t, site.HTML, "javascript:alert")
}

func TestGenerate_Nil(t *testing.T) {
	_, err := Generate(nil, "")
	var genErr *GenerateError
	assert.ErrorAs(t, err, &genErr)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AD", initials("ada"))
	assert.Equal(t, "J", initials("  j."))
	assert.Equal(t, "", initials(""))
	assert.Equal(t, "ÉM", initials("émile"))
}

func TestStore_SaveLoadPreview(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "sites"))
	require.NoError(t, err)

	site, err := Generate(sampleData(), "professional")
	require.NoError(t, err)

	id, err := store.Save(site)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(store.Dir(), id, IndexFile))

	loaded, err := store.Load(id)
	require.NoError(t, err)
	assert.Equal(t, site, loaded)

	preview, err := store.Preview(id)
	require.NoError(t, err)
	assert.NotContains(t, preview, stylesheetLink)
	assert.NotContains(t, preview, scriptTag)
	assert.Contains(t, preview, "<style>\n"+site.CSS)
	assert.Contains(t, preview, "<script>\n"+site.JS)
}

func TestStore_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"../../etc", "not-a-uuid", "6f1c1d2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f"} {
		_, err := store.Load(id)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf, id)
		assert.ErrorAs(t, store.WriteZip(id, io.Discard), &nf, id)
	}
}

func TestStore_WriteZip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	site := &Site{HTML: "<html></html>", CSS: "body{}", JS: "// js"}
	id, err := store.Save(site)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.WriteZip(id, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	got := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		got[f.Name] = string(b)
	}
	assert.Equal(t, site.Files(), got)
}

func TestStore_MissingOptionalAsset(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	id, err := store.Save(&Site{HTML: "<p>x</p>", CSS: "a{}", JS: "x"})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(store.Dir(), id, ScriptFile)))

	site, err := store.Load(id)
	require.NoError(t, err)
	assert.Empty(t, site.JS)
}

func TestComponentEditor_Modify(t *testing.T) {
	fake := &llmtest.Fake{Text: "```html\n<div class=\"project-card\" data-component=\"project-card\" onclick=\"steal()\"><h3 id=\"t\">New</h3><script>alert(1)</script></div>\n```"}
	editor := NewComponentEditor(fake)

	out, err := editor.Modify(context.Background(), `<div class="project-card">Old</div>`, "rename to New", "project-card")
	require.NoError(t, err)

	assert.Equal(t, `<div class="project-card" data-component="project-card"><h3 id="t">New</h3></div>`, out)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Request.Prompt, `<div class="project-card">Old</div>`)
	assert.Contains(t, calls[0].Request.Prompt, "User instructions: rename to New")
	assert.Contains(t, calls[0].Request.Prompt, "Component type: project-card")
}

func TestComponentEditor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		editor *ComponentEditor
		html   string
	}{
		{"no client", NewComponentEditor(nil), "<p>x</p>"},
		{"missing html", NewComponentEditor(&llmtest.Fake{Text: "<p>y</p>"}), " "},
		{"service error", NewComponentEditor(&llmtest.Fake{TextErr: errors.New("quota")}), "<p>x</p>"},
		{"sanitized away", NewComponentEditor(&llmtest.Fake{Text: "<script>alert(1)</script>"}), "<p>x</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.editor.Modify(context.Background(), tt.html, "make it bold", "skill-tag")
			var editErr *EditError
			assert.ErrorAs(t, err, &editErr)
		})
	}
}
