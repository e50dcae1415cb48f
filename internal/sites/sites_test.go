package sites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epgforge/epgforge/internal/xmltv"
)

func TestLoadFiltersCommentsAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.txt")
	content := "# comment\n\ntvtv.us\nexample.co.uk\nNOT_A_HOST\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []xmltv.Site{"tvtv.us", "example.co.uk"}, got)
}

func TestLoadReturnsErrNoSitesWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNoSites)
}

func TestLoadFallsBackToDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(wd)

	require.NoError(t, os.Chdir(dir))
	require.NoError(t, os.Mkdir("sites", 0o755))
	require.NoError(t, os.Mkdir(filepath.Join("sites", "tvtv.us"), 0o755))

	got, err := Load("missing-sites-file.txt")
	require.NoError(t, err)
	assert.Equal(t, []xmltv.Site{"tvtv.us"}, got)
}
