package website

import "strings"

// Theme names.
const (
	ThemeProfessional = "professional"
	ThemeFuturistic   = "futuristic"
	ThemePlayful      = "playful"
)

// Theme is a site palette and font stack.
type Theme struct {
	Name       string
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Text       string
	Fonts      string
}

var themes = map[string]Theme{
	ThemeProfessional: {
		Name:       ThemeProfessional,
		Primary:    "#2563eb",
		Secondary:  "#64748b",
		Accent:     "#0f172a",
		Background: "#ffffff",
		Text:       "#1e293b",
		Fonts:      "'Inter', -apple-system, BlinkMacSystemFont, sans-serif",
	},
	ThemeFuturistic: {
		Name:       ThemeFuturistic,
		Primary:    "#00d4ff",
		Secondary:  "#7c3aed",
		Accent:     "#ec4899",
		Background: "#0f0f23",
		Text:       "#ffffff",
		Fonts:      "'Orbitron', 'Courier New', monospace",
	},
	ThemePlayful: {
		Name:       ThemePlayful,
		Primary:    "#f59e0b",
		Secondary:  "#ec4899",
		Accent:     "#10b981",
		Background: "#fef3c7",
		Text:       "#374151",
		Fonts:      "'Poppins', 'Comic Sans MS', cursive",
	},
}

// ThemeFor returns the named theme; unknown names get the professional one.
func ThemeFor(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[ThemeProfessional]
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	return []string{ThemeProfessional, ThemeFuturistic, ThemePlayful}
}
