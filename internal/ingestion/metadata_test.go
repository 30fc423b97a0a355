package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONRoundTrip(t *testing.T) {
	metadata := &Metadata{
		Filename:  "resume.pdf",
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Pages:     3,
		PagesRead: 2,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
	assert.Contains(t, string(jsonBytes), `"pages_read": 2`)
}

func TestComputeHash(t *testing.T) {
	// SHA256 of "hello"
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", computeHash("hello"))
	assert.NotEqual(t, computeHash("a"), computeHash("b"))
}

func TestNewMetadata(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	metadata := NewMetadata("resume text", "cv.pdf")

	assert.Equal(t, "cv.pdf", metadata.Filename)
	assert.Equal(t, computeHash("resume text"), metadata.Hash)

	ts, err := time.Parse(time.RFC3339, metadata.Timestamp)
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
}
