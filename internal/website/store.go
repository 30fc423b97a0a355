package website

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	stylesheetLink = `<link rel="stylesheet" href="styles.css">`
	scriptTag      = `<script src="script.js"></script>`
)

var bundleFiles = []string{IndexFile, StylesFile, ScriptFile}

// Store keeps generated sites under <dir>/<uuid>/.
type Store struct {
	dir string
}

// NewStore creates the root directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create website directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

// Save writes a bundle and returns its id.
func (s *Store) Save(site *Site) (string, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.dir, id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create website folder: %w", err)
	}
	files := site.Files()
	for _, name := range bundleFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(files[name]), 0o644); err != nil {
			_ = os.RemoveAll(dir)
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return id, nil
}

// folder resolves id to its directory. Anything that is not a UUID is
// reported as not found, so ids never reach the filesystem unparsed.
func (s *Store) folder(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", &NotFoundError{ID: id}
	}
	return filepath.Join(s.dir, parsed.String()), nil
}

// Load reads a saved bundle.
func (s *Store) Load(id string) (*Site, error) {
	dir, err := s.folder(id)
	if err != nil {
		return nil, err
	}
	read := func(name string) (string, error) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			if name == IndexFile {
				return "", &NotFoundError{ID: id}
			}
			return "", nil
		}
		return string(b), err
	}

	site := &Site{}
	if site.HTML, err = read(IndexFile); err != nil {
		return nil, err
	}
	if site.CSS, err = read(StylesFile); err != nil {
		return nil, err
	}
	if site.JS, err = read(ScriptFile); err != nil {
		return nil, err
	}
	return site, nil
}

// Preview returns the saved page with its stylesheet and script inlined so it
// renders from a single response.
func (s *Store) Preview(id string) (string, error) {
	site, err := s.Load(id)
	if err != nil {
		return "", err
	}
	return InlineAssets(site), nil
}

// InlineAssets replaces the stylesheet link and script tag with their contents.
func InlineAssets(site *Site) string {
	html := strings.Replace(site.HTML, stylesheetLink, "<style>\n"+site.CSS+"\n</style>", 1)
	return strings.Replace(html, scriptTag, "<script>\n"+site.JS+"\n</script>", 1)
}

// WriteZip writes the saved bundle to w as a zip archive.
func (s *Store) WriteZip(id string, w io.Writer) error {
	dir, err := s.folder(id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, IndexFile)); err != nil {
		return &NotFoundError{ID: id}
	}

	zw := zip.NewWriter(w)
	for _, name := range bundleFiles {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: time.Now()})
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := f.Write(content); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
	}
	return zw.Close()
}
