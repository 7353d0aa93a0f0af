package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSite(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":                             "<html>home</html>",
		"script.js":                              "// js",
		"images/image1.jpg":                      "jpg",
		"works/projects/p-2024-001-a/index.html": "<html>project</html>",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return New(Config{Dir: dir}, zap.NewNop())
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(newSite(t), "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServesSite(t *testing.T) {
	s := newSite(t)

	w := get(s, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "home")
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))

	w = get(s, "/script.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "// js", w.Body.String())

	w = get(s, "/works/projects/p-2024-001-a/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "project")
}

func TestHeadRequests(t *testing.T) {
	s := newSite(t)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/images/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoDirectoryListing(t *testing.T) {
	s := newSite(t)
	assert.Equal(t, http.StatusNotFound, get(s, "/images/").Code)
	assert.Equal(t, http.StatusNotFound, get(s, "/missing.html").Code)
}

func TestShutdownBeforeStart(t *testing.T) {
	s := newSite(t)
	require.NoError(t, s.Shutdown(context.Background()))

	done := make(chan error, 1)
	go func() { done <- s.Start() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start kept serving after Shutdown")
	}
}
