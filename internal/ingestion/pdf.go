// Package ingestion turns uploaded resume documents into clean plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages bounds how many pages of a resume are read.
const DefaultMaxPages = 2

// PDFError reports a document that could not be read as a PDF.
type PDFError struct {
	Message string
	Cause   error
}

func (e *PDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf extraction failed: %s", e.Message)
}

func (e *PDFError) Unwrap() error {
	return e.Cause
}

// PDFOptions tunes PDF extraction.
type PDFOptions struct {
	// MaxPages limits extraction to the first pages; zero uses DefaultMaxPages
	// and a negative value reads every page.
	MaxPages int
}

// PDFContent is the text of a PDF plus page counts.
type PDFContent struct {
	Text      string
	Pages     int
	PagesRead int
}

// ExtractPDFText reads the plain text of the first pages of a PDF. Pages that
// fail to decode are skipped; a document with no text at all is an error.
func ExtractPDFText(r io.ReaderAt, size int64, opts PDFOptions) (content *PDFContent, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			content = nil
			err = &PDFError{Message: fmt.Sprintf("malformed document: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, &PDFError{Message: "failed to open document", Cause: err}
	}

	limit := opts.MaxPages
	if limit == 0 {
		limit = DefaultMaxPages
	}
	total := reader.NumPage()
	if limit < 0 || limit > total {
		limit = total
	}

	var sb strings.Builder
	read := 0
	for i := 1; i <= limit; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		read++
	}

	text := CleanText(sb.String())
	if text == "" {
		return nil, &PDFError{Message: "document contains no extractable text"}
	}
	return &PDFContent{Text: text, Pages: total, PagesRead: read}, nil
}

// ExtractPDFBytes is ExtractPDFText over an in-memory document.
func ExtractPDFBytes(data []byte, opts PDFOptions) (*PDFContent, error) {
	return ExtractPDFText(bytes.NewReader(data), int64(len(data)), opts)
}
