package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxUploadBytes caps an uploaded resume.
const DefaultMaxUploadBytes = 16 << 20

// ErrUnsupportedFile is returned for uploads that are not PDFs.
var ErrUnsupportedFile = errors.New("unsupported file type: only .pdf is accepted")

// ErrFileTooLarge is returned when an upload exceeds its size limit.
var ErrFileTooLarge = errors.New("file too large")

// AllowedFile reports whether filename has an accepted extension.
func AllowedFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Upload is a stored upload. Remove deletes it.
type Upload struct {
	Path string
	Name string
	Size int64
}

// Remove deletes the stored file.
func (u *Upload) Remove() error {
	if err := os.Remove(u.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// SaveUpload copies r into dir as "<uuid>-<base name>", rejecting non-PDF
// names and bodies over maxBytes (zero uses DefaultMaxUploadBytes).
func SaveUpload(dir, filename string, r io.Reader, maxBytes int64) (*Upload, error) {
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." || !AllowedFile(name) {
		return nil, ErrUnsupportedFile
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+"-"+name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(r, maxBytes+1))
	closeErr := f.Close()
	upload := &Upload{Path: path, Name: name, Size: n}
	switch {
	case copyErr != nil:
		_ = upload.Remove()
		return nil, fmt.Errorf("failed to write upload: %w", copyErr)
	case closeErr != nil:
		_ = upload.Remove()
		return nil, fmt.Errorf("failed to write upload: %w", closeErr)
	case n > maxBytes:
		_ = upload.Remove()
		return nil, ErrFileTooLarge
	}
	return upload, nil
}

// ExtractUpload reads the text of a stored PDF upload.
func ExtractUpload(u *Upload, opts PDFOptions) (*PDFContent, *Metadata, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat upload: %w", err)
	}
	content, err := ExtractPDFText(f, info.Size(), opts)
	if err != nil {
		return nil, nil, err
	}
	meta := NewMetadata(content.Text, u.Name)
	meta.Pages = content.Pages
	meta.PagesRead = content.PagesRead
	return content, meta, nil
}
