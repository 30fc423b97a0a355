package ingestion

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("resume.pdf"))
	assert.True(t, AllowedFile("RESUME.PDF"))
	assert.False(t, AllowedFile("resume.docx"))
	assert.False(t, AllowedFile("pdf"))
}

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	data := makePDF(t, "Ada Lovelace")

	u, err := SaveUpload(dir, "../../etc/resume.pdf", bytes.NewReader(data), 0)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", u.Name)
	assert.Equal(t, dir, filepath.Dir(u.Path))
	assert.True(t, strings.HasSuffix(u.Path, "-resume.pdf"))
	assert.Equal(t, int64(len(data)), u.Size)

	content, meta, err := ExtractUpload(u, PDFOptions{})
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Ada Lovelace")
	assert.Equal(t, "resume.pdf", meta.Filename)
	assert.Equal(t, 1, meta.Pages)

	require.NoError(t, u.Remove())
	_, err = os.Stat(u.Path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, u.Remove())
}

func TestSaveUpload_Rejects(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveUpload(dir, "notes.txt", strings.NewReader("x"), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = SaveUpload(dir, "", strings.NewReader("x"), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = SaveUpload(dir, "big.pdf", strings.NewReader(strings.Repeat("x", 11)), 10)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
