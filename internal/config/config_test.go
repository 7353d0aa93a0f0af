package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, "Gino Wong", cfg.SiteTitle)
	assert.Equal(t, 1313, cfg.Port)
	assert.Equal(t, "images/", cfg.Gallery.Prefix)
	assert.Equal(t, []string{"index.html", "work.html"}, cfg.Projects.RelinkFiles)
	assert.Equal(t, "images.zip", cfg.Projects.Archive)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	content := `siteTitle: Test Site
outputDir: dist
gallery:
  manifest: gallery.yaml
projects:
  recent:
    - p-2024-001-the-awarded
  relink:
    - from: works/work-one/index.html
      to: works/projects/p-2024-001-the-awarded/index.html
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "Test Site", cfg.SiteTitle)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "gallery.yaml", cfg.Gallery.Manifest)
	assert.Equal(t, []string{"p-2024-001-the-awarded"}, cfg.Projects.Recent)
	require.Len(t, cfg.Projects.Relink, 1)
	assert.Equal(t, LinkRewrite{
		From: "works/work-one/index.html",
		To:   "works/projects/p-2024-001-the-awarded/index.html",
	}, cfg.Projects.Relink[0])
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MYCV_OUTPUTDIR", "out")

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadParams(t *testing.T) {
	params, err := LoadParams("")
	require.NoError(t, err)
	assert.Empty(t, params)

	path := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("siteTitle: Other\ninstagram: gino\n"), 0644))
	params, err = LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, "Other", params["siteTitle"])
	assert.Equal(t, "gino", params["instagram"])

	_, err = LoadParams(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
