package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxj7031gino/my-cv/internal/model"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	siteData = &model.SiteData{}
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestBuildCommand(t *testing.T) {
	chdir(t, t.TempDir())
	run(t, "build")

	page, err := os.ReadFile(filepath.Join("public", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `id="nav-statement"`)
	assert.Equal(t, 77, strings.Count(string(page), `loading="lazy"`))
	assert.FileExists(t, filepath.Join("public", "script.js"))
}

func TestGalleryListCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("config.yaml", []byte("gallery:\n  manifest: gallery.yaml\n  prefix: photos/\n"), 0o644))
	require.NoError(t, os.WriteFile("gallery.yaml", []byte("images: [b10.jpg, a2.jpg, c1.jpg]\n"), 0o644))

	out := run(t, "gallery", "list")
	first := strings.Index(out, "photos/c1.jpg")
	second := strings.Index(out, "photos/a2.jpg")
	third := strings.Index(out, "photos/b10.jpg")
	require.True(t, first >= 0 && second >= 0 && third >= 0, out)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestConfigFlagFeedsParams(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte("siteTitle: Default\n"), 0o644))
	require.NoError(t, os.WriteFile("other.yaml", []byte("siteTitle: Other\ninstagram: gino\n"), 0o644))
	t.Cleanup(func() { cfgFile = "" })

	run(t, "--config", "other.yaml", "build")
	assert.Equal(t, "Other", appConfig.SiteTitle)
	assert.Equal(t, "Other", siteData.Config["siteTitle"])
	assert.Equal(t, "gino", siteData.Config["instagram"])
}

func TestGalleryNormalizeNeedsSlugs(t *testing.T) {
	chdir(t, t.TempDir())
	rootCmd.SetArgs([]string{"gallery", "normalize"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.Error(t, rootCmd.Execute())
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
