package backoff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epgforge/epgforge/internal/xmltv"
)

func TestLoadMissingFileYieldsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	l, err := Load(path)
	require.NoError(t, err)
	assert.False(t, l.Contains(xmltv.Site("anything")))
}

func TestAppendPersistsAndDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backoff.txt")
	l, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, l.Append(xmltv.Site("bad.site")))
	require.NoError(t, l.Append(xmltv.Site("bad.site")))
	assert.True(t, l.Contains(xmltv.Site("bad.site")))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bad.site\n", string(body))
}

func TestLoadReadsExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backoff.txt")
	require.NoError(t, os.WriteFile(path, []byte("bad.site\nother.site\n\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.True(t, l.Contains(xmltv.Site("bad.site")))
	assert.True(t, l.Contains(xmltv.Site("other.site")))
	assert.False(t, l.Contains(xmltv.Site("unknown.site")))
}
