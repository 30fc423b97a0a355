package rendering

import (
	_ "embed"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/portfolio-resume/internal/types"
)

//go:embed resume.tex.tmpl
var resumeTemplate string

// DefaultObjective follows the title when the data carries no summary.
const DefaultObjective = " with expertise in modern software development technologies and best practices. Passionate about creating scalable, maintainable solutions and contributing to innovative projects."

// ContactSeparator joins the header contact items.
const ContactSeparator = ` \quad $|$ \quad `

// templateData is what the LaTeX template sees. Fields are raw; the template
// escapes them.
type templateData struct {
	Name    string
	Title   string
	About   string
	Contact string
	Skills  []types.SkillCategory
	Data    *types.EnrichedResumeData
}

var (
	tmplOnce   sync.Once
	parsedTmpl *template.Template
	tmplErr    error
)

func resumeTmpl() (*template.Template, error) {
	tmplOnce.Do(func() {
		parsedTmpl, tmplErr = parseTemplate(resumeTemplate)
	})
	return parsedTmpl, tmplErr
}

// parseTemplate parses LaTeX template source. Actions use << >> so LaTeX
// braces need no quoting.
func parseTemplate(src string) (*template.Template, error) {
	tmpl, err := template.New("resume").Delims("<<", ">>").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"url":    EscapeURL,
		"list":   escapeList,
	}).Parse(src)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// RenderLaTeX renders enriched resume data as a complete LaTeX document.
func RenderLaTeX(data *types.EnrichedResumeData) (string, error) {
	if data == nil {
		return "", &RenderError{Message: "no resume data"}
	}
	tmpl, err := resumeTmpl()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(data)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

func buildTemplateData(data *types.EnrichedResumeData) *templateData {
	d := *data
	d.Skills = append([]types.SkillCategory(nil), data.Skills...)
	d.Normalize()

	td := &templateData{
		Name:    d.Name,
		Title:   d.Title,
		About:   strings.TrimSpace(d.About),
		Contact: contactLine(&d),
		Data:    &d,
	}
	if td.About == "" {
		td.About = d.Title + DefaultObjective
	}
	for _, c := range d.Skills {
		if len(c.Skills) > 0 {
			td.Skills = append(td.Skills, c)
		}
	}
	return td
}

// contactLine builds the escaped header line: email, phone, then profile links.
func contactLine(d *types.EnrichedResumeData) string {
	var parts []string
	if v := d.Contact("email"); v != "" {
		parts = append(parts, "Email: "+EscapeLaTeX(v))
	}
	if v := d.Contact("phone"); v != "" {
		parts = append(parts, "Phone: "+EscapeLaTeX(v))
	}
	if v := d.Contact("github"); v != "" {
		parts = append(parts, `\href{`+EscapeURL(v)+`}{GitHub Profile}`)
	}
	if v := d.Contact("linkedin"); v != "" {
		parts = append(parts, `\href{`+EscapeURL(v)+`}{LinkedIn Profile}`)
	}
	return strings.Join(parts, ContactSeparator)
}

func escapeList(items []string) string {
	escaped := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			escaped = append(escaped, EscapeLaTeX(s))
		}
	}
	return strings.Join(escaped, ", ")
}
