// Package narrative flattens extracted portfolio features into a plain-text
// document and asks the completion service to restructure it as a resume summary.
package narrative

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-resume/internal/extract"
	"github.com/jonathan/portfolio-resume/internal/fetch"
)

// DefaultContextChars bounds how much raw page text follows the feature sections.
const DefaultContextChars = 3000

// Header opens every built narrative.
const Header = "PROFESSIONAL PORTFOLIO DATA EXTRACTION:"

// ContextHeader introduces the raw page text.
const ContextHeader = "ADDITIONAL CONTENT FOR CONTEXT:"

// Options tunes narrative construction.
type Options struct {
	ContextChars int
}

// DefaultOptions returns the default narrative options.
func DefaultOptions() Options {
	return Options{ContextChars: DefaultContextChars}
}

// Document is the flattened text handed to the restructuring call.
type Document struct {
	Text string
	// Placeholder is set when Text is the fetcher's placeholder rather than
	// content built from a page.
	Placeholder bool
}

// Build renders f as a sectioned narrative. A placeholder document is passed
// through as is, since there are no features to report.
func Build(f *extract.Features, doc *fetch.Document, opts Options) *Document {
	if doc != nil && doc.Status == fetch.StatusPlaceholder {
		return &Document{Text: doc.Text, Placeholder: true}
	}
	if f == nil {
		f = extract.Empty()
	}
	if opts.ContextChars <= 0 {
		opts.ContextChars = DefaultContextChars
	}

	var b strings.Builder
	b.WriteString(Header + "\n\n")

	section(&b, "PERSONAL INFORMATION",
		"NAME: "+f.Name,
		"TITLE: "+f.Title,
		"EMAIL: "+f.Contact.Email,
		"PHONE: "+f.Contact.Phone,
		"LOCATION: "+f.Location,
		"LINKEDIN: "+f.Contact.LinkedIn,
		"GITHUB: "+f.Contact.GitHub,
	)
	section(&b, "PROFESSIONAL SUMMARY", "ABOUT: "+f.About)
	section(&b, "TECHNICAL SKILLS", "SKILLS: "+strings.Join(f.Skills, ", "))
	section(&b, "EDUCATION BACKGROUND", append([]string{"EDUCATION:"}, educationLines(f.Education)...)...)
	section(&b, "WORK EXPERIENCE", append([]string{"EXPERIENCE:"}, experienceLines(f.Experience)...)...)
	section(&b, "PROJECT PORTFOLIO", append([]string{"PROJECTS:"}, projectLines(f.Projects)...)...)
	section(&b, "ACHIEVEMENTS", append([]string{"ACHIEVEMENTS:"}, bullets(f.Achievements)...)...)

	b.WriteString(ContextHeader + "\n")
	b.WriteString(prefix(f.Text, opts.ContextChars))

	return &Document{Text: strings.TrimSpace(b.String())}
}

func section(b *strings.Builder, title string, lines ...string) {
	b.WriteString(title + ":\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n")
}

func educationLines(entries []extract.Education) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, "- "+joinNonEmpty(" | ",
			labeled("Institute", e.Institute),
			labeled("Degree", e.Degree),
			labeled("Year", e.Year),
			labeled("GPA", e.GPA),
		))
	}
	return lines
}

func experienceLines(entries []extract.Experience) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, "- "+joinNonEmpty(" | ",
			labeled("Position", e.Position),
			labeled("Company", e.Company),
			labeled("Duration", e.Duration),
		))
	}
	return lines
}

func projectLines(projects []extract.Project) []string {
	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		lines = append(lines, "- "+joinNonEmpty(" | ",
			labeled("Title", p.Title),
			labeled("Description", p.Description),
			labeled("Technologies", strings.Join(p.Technologies, ", ")),
			labeled("GitHub", p.GitHub),
			labeled("Demo", p.Demo),
		))
	}
	return lines
}

func bullets(items []string) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return lines
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// prefix returns the first n characters of s without splitting a rune.
func prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
