package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("http://example.com/x"))
	assert.True(t, IsRemote("https://example.com/x"))
	assert.False(t, IsRemote("/tmp/x"))
	assert.False(t, IsRemote("relative/path.txt"))
}

func TestTextReadsLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello local"), 0o644))

	body, err := Text(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello local", body)
}

func TestTextFetchesHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello remote"))
	}))
	defer srv.Close()

	body, err := Text(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello remote", body)
}

func TestTextHTTPNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Text(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestTextMissingLocalFile(t *testing.T) {
	_, err := Text(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
