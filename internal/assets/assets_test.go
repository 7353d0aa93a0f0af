package assets

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestSetupWithArchive(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "images.zip"), map[string]string{
		"images/Beta.JPG":            "bb",
		"images/alpha.png":           "a",
		"images/series/gamma.jpg":    "ggg",
		"images/notes.txt":           "skip",
		"images/.DS_Store":           "junk",
		"images/._alpha.png":         "junk",
		"__MACOSX/images/._Beta.JPG": "junk",
	})

	res, err := Setup(Options{Root: root, Archive: "images.zip", Inbox: "inbox/images_raw"})
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(root, "images", "site"))
	assert.DirExists(t, filepath.Join(root, "works", "projects"))

	assert.Equal(t, filepath.Join(root, "inbox", "images_raw", "images"), res.ImagesDir)
	assert.NoFileExists(t, filepath.Join(res.ImagesDir, ".DS_Store"))
	assert.NoFileExists(t, filepath.Join(res.ImagesDir, "._alpha.png"))
	assert.NoDirExists(t, filepath.Join(root, "inbox", "images_raw", "__MACOSX"))

	assert.Equal(t, 3, res.InventoryRows)
	inv, err := os.ReadFile(res.Inventory)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"filename,relative_path,ext,bytes",
		"alpha.png,alpha.png,.png,1",
		"Beta.JPG,Beta.JPG,.JPG,2",
		"gamma.jpg,series/gamma.jpg,.jpg,3",
		"",
	}, "\n"), string(inv))

	assert.True(t, res.CreatedCSV)
	assert.Equal(t, 3, res.ProjectFolders)
	assert.DirExists(t, filepath.Join(root, "works", "projects", "p-2024-001-work-one", "img"))
	assert.DirExists(t, filepath.Join(root, "works", "projects", "p-2022-001-work-three", "assets"))
}

func TestWriteInventory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "reports", "inventory.csv")

	n, err := WriteInventory(dir, out)
	require.NoError(t, err)
	assert.Zero(t, n)
	inv, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "filename,relative_path,ext,bytes\n", string(inv))

	_, err = WriteInventory(dir, t.TempDir())
	assert.Error(t, err)
}

func TestSetupWithoutArchiveKeepsCSV(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "projects.csv"),
		[]byte("project_slug,title,year\np-2024-001-the-awarded,The Awarded,2024\n"), 0644))

	res, err := Setup(Options{Root: root, Archive: "images.zip", Inbox: "inbox/images_raw"})
	require.NoError(t, err)

	assert.Empty(t, res.ImagesDir)
	assert.False(t, res.CreatedCSV)
	assert.Equal(t, 1, res.ProjectFolders)
	assert.DirExists(t, filepath.Join(root, "works", "projects", "p-2024-001-the-awarded", "img"))
}

func TestExtractFlatArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "flat.zip")
	writeZip(t, archive, map[string]string{"one.jpg": "1"})

	out, err := Extract(archive, filepath.Join(dir, "inbox"), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inbox"), out)
	assert.FileExists(t, filepath.Join(out, "one.jpg"))
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{"../evil.jpg": "x"})

	_, err := Extract(archive, filepath.Join(dir, "inbox"), nil)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "evil.jpg"))
}
