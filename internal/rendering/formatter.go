package rendering

import (
	"bytes"
	"context"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/portfolio-resume/internal/types"
)

const (
	pageMargin   = 15.0
	bodyFontSize = 10.0
	lineHeight   = 5.0
)

// FormatterBackend draws the resume directly with gofpdf. It has no external
// requirements and serves as the last backend in a chain.
type FormatterBackend struct{}

// NewFormatterBackend returns the built-in formatter.
func NewFormatterBackend() *FormatterBackend { return &FormatterBackend{} }

func (FormatterBackend) Name() string { return "formatter" }

// Render lays out the same sections as the LaTeX template.
func (FormatterBackend) Render(ctx context.Context, data *types.EnrichedResumeData) ([]byte, error) {
	if data == nil {
		return nil, &RenderError{Message: "no resume data"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	td := buildTemplateData(data)
	d := td.Data

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(d.Name+" - Resume", true)
	pdf.AddPage()
	f := &formatter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, f.tr(d.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, f.tr(d.Title), "", 1, "C", false, 0, "")
	if contact := plainContact(d); contact != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, f.tr(contact), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	f.section("Objective")
	f.paragraph(td.About)

	if len(td.Skills) > 0 {
		f.section("Skills")
		for _, c := range td.Skills {
			f.labeled(c.Name+": ", strings.Join(c.Skills, ", "))
		}
	}

	if len(d.Projects) > 0 {
		f.section("Projects")
		for _, p := range d.Projects {
			f.heading(p.Name, strings.Join(p.Technologies, ", "))
			var links []string
			if p.GitHub != "" {
				links = append(links, "GitHub: "+p.GitHub)
			}
			if p.Demo != "" {
				links = append(links, "Demo: "+p.Demo)
			}
			if len(links) > 0 {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.MultiCell(0, lineHeight, f.tr(strings.Join(links, " | ")), "", "L", false)
			}
			f.bullet(p.Description)
			pdf.Ln(1.5)
		}
	}

	if len(d.Education) > 0 {
		f.section("Education")
		for _, e := range d.Education {
			f.heading(e.Degree, e.Duration)
			f.paragraph(e.Institution + " | CGPA: " + e.GPA)
			pdf.Ln(1.5)
		}
	}

	if len(d.Experience) > 0 {
		f.section("Experience")
		for _, e := range d.Experience {
			f.heading(e.Position, e.Duration)
			line := e.Company
			if len(e.Skills) > 0 {
				line += " | " + strings.Join(e.Skills, ", ")
			}
			f.paragraph(line)
			if e.Description != "" {
				f.bullet(e.Description)
			}
			pdf.Ln(1.5)
		}
	}

	if len(d.PositionsOfResponsibility) > 0 {
		f.section("Positions of Responsibility")
		for _, p := range d.PositionsOfResponsibility {
			text := p.PositionName
			if p.SocietyName != "" {
				text += ", " + p.SocietyName
			}
			if p.Description != "" {
				text += ": " + p.Description
			}
			f.bullet(text)
		}
	}

	if len(d.Achievements) > 0 {
		f.section("Achievements")
		for _, a := range d.Achievements {
			text := a.Name
			if a.Institution != "" {
				text += " (" + a.Institution + ")"
			}
			f.bullet(text + ": " + a.Description)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

type formatter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (f *formatter) section(title string) {
	f.pdf.Ln(2)
	f.pdf.SetFont("Helvetica", "B", 13)
	f.pdf.CellFormat(0, 7, f.tr(title), "", 1, "L", false, 0, "")
	y := f.pdf.GetY()
	w, _ := f.pdf.GetPageSize()
	f.pdf.Line(pageMargin, y, w-pageMargin, y)
	f.pdf.Ln(2)
}

// heading writes a bold left label with an optional right-aligned note.
func (f *formatter) heading(left, right string) {
	w, _ := f.pdf.GetPageSize()
	usable := w - 2*pageMargin
	f.pdf.SetFont("Helvetica", "B", bodyFontSize+1)
	if right == "" {
		f.pdf.CellFormat(usable, 6, f.tr(left), "", 1, "L", false, 0, "")
		return
	}
	f.pdf.CellFormat(usable*0.6, 6, f.tr(left), "", 0, "L", false, 0, "")
	f.pdf.SetFont("Helvetica", "I", bodyFontSize-1)
	f.pdf.CellFormat(usable*0.4, 6, f.tr(right), "", 1, "R", false, 0, "")
}

func (f *formatter) labeled(label, text string) {
	f.pdf.SetFont("Helvetica", "B", bodyFontSize)
	f.pdf.Write(lineHeight, f.tr(label))
	f.pdf.SetFont("Helvetica", "", bodyFontSize)
	f.pdf.Write(lineHeight, f.tr(text))
	f.pdf.Ln(lineHeight)
}

func (f *formatter) paragraph(text string) {
	f.pdf.SetFont("Helvetica", "", bodyFontSize)
	f.pdf.MultiCell(0, lineHeight, f.tr(text), "", "L", false)
}

func (f *formatter) bullet(text string) {
	f.pdf.SetFont("Helvetica", "", bodyFontSize)
	f.pdf.SetX(pageMargin + 3)
	f.pdf.MultiCell(0, lineHeight, f.tr("- "+text), "", "L", false)
}

// plainContact is the header contact line without LaTeX markup.
func plainContact(d *types.EnrichedResumeData) string {
	var parts []string
	for _, k := range []string{"email", "phone", "github", "linkedin"} {
		if v := d.Contact(k); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}
