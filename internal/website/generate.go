// Package website builds a static portfolio site from enriched resume data
// and keeps generated bundles on disk for preview and download.
package website

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"sort"
	"strings"
	"sync"
	texttemplate "text/template"
	"unicode"

	"github.com/jonathan/portfolio-resume/internal/types"
)

// Bundle file names.
const (
	IndexFile  = "index.html"
	StylesFile = "styles.css"
	ScriptFile = "script.js"
)

// DefaultAbout is shown when the data carries no summary.
const DefaultAbout = "Passionate developer with expertise in modern technologies and a strong foundation in software development."

//go:embed assets
var assets embed.FS

// Site is a generated bundle.
type Site struct {
	HTML string
	CSS  string
	JS   string
}

// Files maps bundle file names to contents.
func (s *Site) Files() map[string]string {
	return map[string]string{
		IndexFile:  s.HTML,
		StylesFile: s.CSS,
		ScriptFile: s.JS,
	}
}

type contact struct {
	Label string
	Value string
	Href  string
}

type pageData struct {
	Data     *types.EnrichedResumeData
	Theme    Theme
	Initials string
	About    string
	Skills   []string
	Contacts []contact
}

var (
	loadOnce sync.Once
	pageTmpl *htmltemplate.Template
	cssTmpl  *texttemplate.Template
	script   string
	loadErr  error
)

func loadTemplates() error {
	loadOnce.Do(func() {
		pageTmpl, loadErr = htmltemplate.New("index.html.tmpl").Funcs(htmltemplate.FuncMap{
			"join": func(items []string) string { return strings.Join(items, ", ") },
		}).ParseFS(assets, "assets/index.html.tmpl")
		if loadErr != nil {
			return
		}

		cssTmpl, loadErr = texttemplate.ParseFS(assets, "assets/styles.css.tmpl")
		if loadErr != nil {
			return
		}

		var js []byte
		js, loadErr = assets.ReadFile("assets/script.js")
		script = string(js)
	})
	return loadErr
}

// Generate renders the site for data using the named theme.
func Generate(data *types.EnrichedResumeData, theme string) (*Site, error) {
	if data == nil {
		return nil, &GenerateError{Message: "no resume data"}
	}
	if err := loadTemplates(); err != nil {
		return nil, &GenerateError{Message: "failed to load templates", Cause: err}
	}

	d := *data
	d.Skills = append([]types.SkillCategory(nil), data.Skills...)
	d.Normalize()
	t := ThemeFor(theme)

	page := &pageData{
		Data:     &d,
		Theme:    t,
		Initials: initials(d.Name),
		About:    strings.TrimSpace(d.About),
		Skills:   d.AllSkills(),
		Contacts: contacts(d.ContactInfo),
	}
	if page.About == "" {
		page.About = DefaultAbout
	}

	var html, css bytes.Buffer
	if err := pageTmpl.Execute(&html, page); err != nil {
		return nil, &GenerateError{Message: "failed to render page", Cause: err}
	}
	if err := cssTmpl.Execute(&css, t); err != nil {
		return nil, &GenerateError{Message: "failed to render styles", Cause: err}
	}
	return &Site{HTML: html.String(), CSS: css.String(), JS: script}, nil
}

// initials is the first two letters or digits of name, upper-cased.
func initials(name string) string {
	var out []rune
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, unicode.ToUpper(r))
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}

var contactOrder = []string{"email", "phone", "github", "linkedin", "portfolio"}

// contacts lists known keys first, then the rest in sorted order.
func contacts(info map[string]string) []contact {
	seen := map[string]bool{}
	var out []contact
	add := func(key string) {
		v := strings.TrimSpace(info[key])
		if v == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, contact{Label: label(key), Value: v, Href: href(key, v)})
	}
	for _, k := range contactOrder {
		add(k)
	}
	rest := make([]string, 0, len(info))
	for k := range info {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		add(k)
	}
	return out
}

func label(key string) string {
	switch key {
	case "github":
		return "GitHub"
	case "linkedin":
		return "LinkedIn"
	}
	if key == "" {
		return key
	}
	r := []rune(key)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// href links emails and absolute web URLs. Other values render as text.
func href(key, value string) string {
	switch {
	case key == "email" && strings.Contains(value, "@"):
		return "mailto:" + value
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return value
	}
	return ""
}
