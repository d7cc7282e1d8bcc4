package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsageError(t *testing.T) {
	assert.Equal(t, 1, run(nil))
	assert.Equal(t, 1, run([]string{"one.html", "two.html"}))
}

func TestRunNoLinks(t *testing.T) {
	page := filepath.Join(t.TempDir(), "empty.html")
	require.NoError(t, os.WriteFile(page, []byte("<html><body>No links here</body></html>"), 0644))

	assert.Equal(t, 0, run([]string{page}))
}

func TestRunMissingPage(t *testing.T) {
	// Unreadable input degrades to an empty link list, not a fatal error.
	assert.Equal(t, 0, run([]string{filepath.Join(t.TempDir(), "gone.html")}))
}

func TestRunPartialFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("archive bytes"))
	})
	mux.HandleFunc("/bad.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	page := filepath.Join(dir, "backup.html")
	html := fmt.Sprintf(`<a href="%s/a.tar.gz">a</a><a href="%s/bad.tar.gz">bad</a>`,
		server.URL, server.URL)
	require.NoError(t, os.WriteFile(page, []byte(html), 0644))

	out := filepath.Join(dir, "out")
	code := run([]string{"-no-progress", "-dir", out, page})

	assert.Equal(t, 0, code, "per-file failures must not fail the process")

	data, err := os.ReadFile(filepath.Join(out, "a.tar.gz"))
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(data))

	_, err = os.Stat(filepath.Join(out, "bad.tar.gz"))
	assert.True(t, os.IsNotExist(err))
}
