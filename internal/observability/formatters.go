// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/portfolio-resume/internal/extract"
	"github.com/jonathan/portfolio-resume/internal/pipeline"
	"github.com/jonathan/portfolio-resume/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to at most n runes, ending in "..." when cut.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items, then a "... and N more" line.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintFeatures outputs what the page heuristics found.
func (p *Printer) PrintFeatures(f *extract.Features) {
	if f == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", f.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", f.Title))
	if f.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", f.Location))
	}
	if f.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", f.Contact.Email))
	}
	if f.Contact.GitHub != "" {
		sb.WriteString(fmt.Sprintf("GitHub:   %s\n", f.Contact.GitHub))
	}
	sb.WriteString("\n")

	if len(f.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(f.Skills)))
		writeList(&sb, f.Skills, maxItemsToShow)
		sb.WriteString("\n")
	}

	if len(f.Projects) > 0 {
		titles := make([]string, 0, len(f.Projects))
		for _, pr := range f.Projects {
			titles = append(titles, pr.Title)
		}
		sb.WriteString(fmt.Sprintf("Projects (%d):\n", len(f.Projects)))
		writeList(&sb, titles, 3)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education: %d  Experience: %d  Achievements: %d",
		len(f.Education), len(f.Experience), len(f.Achievements)))

	p.printBox("EXTRACTED PAGE FEATURES", sb.String())
}

// PrintStages outputs the per-stage report of a conversion.
func (p *Printer) PrintStages(o *pipeline.Outcome) {
	if o == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", o.RunID))
	for _, s := range o.Stages {
		mark := "✓"
		switch s.Status {
		case pipeline.StatusDegraded:
			mark = "~"
		case pipeline.StatusFailed:
			mark = "✗"
		case pipeline.StatusSkipped:
			mark = "-"
		}
		sb.WriteString(fmt.Sprintf("%s %-12s %8s", mark, s.Stage, s.Duration.Round(time.Millisecond)))
		if s.Detail != "" {
			sb.WriteString("  " + s.Detail)
		}
		sb.WriteString("\n")
	}

	switch {
	case o.Fallback:
		sb.WriteString(fmt.Sprintf("\n⚠ fallback record used (%s)", o.Reason))
	case o.Degraded:
		sb.WriteString("\n⚠ degraded: portfolio page was not reachable")
	default:
		sb.WriteString("\nall stages succeeded")
	}

	p.printBox("CONVERSION STAGES", sb.String())
}

// PrintResumeData outputs a summary of enriched resume data.
func (p *Printer) PrintResumeData(d *types.EnrichedResumeData) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:  %s\n", d.Name))
	sb.WriteString(fmt.Sprintf("Title: %s\n", d.Title))
	sb.WriteString("\n")

	sb.WriteString("Skills:\n")
	for _, c := range d.Skills {
		if len(c.Skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %s\n", c.Name, strings.Join(c.Skills, ", ")))
	}
	sb.WriteString("\n")

	if len(d.Projects) > 0 {
		names := make([]string, 0, len(d.Projects))
		for _, pr := range d.Projects {
			names = append(names, pr.Name)
		}
		sb.WriteString("Projects:\n")
		writeList(&sb, names, maxItemsToShow)
		sb.WriteString("\n")
	}

	if len(d.Experience) > 0 {
		roles := make([]string, 0, len(d.Experience))
		for _, e := range d.Experience {
			roles = append(roles, fmt.Sprintf("%s @ %s", e.Position, e.Company))
		}
		sb.WriteString("Experience:\n")
		writeList(&sb, roles, 3)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Contact entries: %d", len(d.ContactInfo)))

	p.printBox("RESUME DATA", sb.String())
}

// PrintValidation outputs the result of a schema check.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ SCHEMA VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	p.printBox("SCHEMA VIOLATIONS", strings.TrimSpace(err.Error()))
}
