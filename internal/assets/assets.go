// Package assets prepares the portfolio's folder layout and unpacks new
// images into an inbox for sorting into projects.
package assets

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/logging"
	"github.com/hxj7031gino/my-cv/internal/model"
	"github.com/hxj7031gino/my-cv/internal/projects"
)

// imagePattern matches the inventory's image extensions, case as listed.
const imagePattern = "**/*.{jpg,jpeg,png,webp,gif,tif,tiff,bmp,heic,JPG,JPEG,PNG}"

var junkPatterns = []string{"**/.DS_Store", "**/._*"}

// starterProjects seed a missing projects.csv.
var starterProjects = []model.Project{
	{Slug: "p-2024-001-work-one", Title: "Work One", Year: "2024"},
	{Slug: "p-2023-001-work-two", Title: "Work Two", Year: "2023"},
	{Slug: "p-2022-001-work-three", Title: "Work Three", Year: "2022"},
}

type Options struct {
	Root    string
	Archive string // relative to Root
	Inbox   string // relative to Root
	// Progress receives the extraction progress bar; nil discards it.
	Progress io.Writer
	Logger   *zap.Logger
}

type Result struct {
	// ImagesDir is where the unpacked images ended up, "" when no archive.
	ImagesDir      string
	Inventory      string
	InventoryRows  int
	CreatedCSV     bool
	ProjectFolders int
}

// Setup creates the base layout, unpacks the archive when present, writes
// the image inventory and makes an img/ and assets/ folder for every
// project listed in projects.csv.
func Setup(opts Options) (*Result, error) {
	log := logging.OrNop(opts.Logger)
	res := &Result{}

	for _, dir := range []string{
		filepath.Join(opts.Root, "images", "site"),
		filepath.Join(opts.Root, "works", "projects"),
	} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	archive := filepath.Join(opts.Root, opts.Archive)
	if _, err := os.Stat(archive); err == nil {
		inbox := filepath.Join(opts.Root, opts.Inbox)
		imagesDir, err := Extract(archive, inbox, opts.Progress)
		if err != nil {
			return nil, err
		}
		removed, err := CleanJunk(imagesDir)
		if err != nil {
			return nil, err
		}
		log.Debug("removed macOS artifacts", zap.Int("count", removed))

		res.ImagesDir = imagesDir
		res.Inventory = filepath.Join(opts.Root, "inbox", "image_inventory.csv")
		if res.InventoryRows, err = WriteInventory(imagesDir, res.Inventory); err != nil {
			return nil, err
		}
		log.Info("unpacked images", zap.String("dir", imagesDir), zap.Int("images", res.InventoryRows))
	} else if errors.Is(err, fs.ErrNotExist) {
		log.Warn("archive not found, skipping unpack", zap.String("archive", archive))
	} else {
		return nil, fmt.Errorf("accessing %s: %w", archive, err)
	}

	tree := projects.Tree{Root: opts.Root}
	if _, err := os.Stat(tree.CSVPath()); errors.Is(err, fs.ErrNotExist) {
		if err := projects.WriteCSV(tree.CSVPath(), starterProjects); err != nil {
			return nil, err
		}
		res.CreatedCSV = true
	}

	rows, err := projects.ReadCSV(tree.CSVPath())
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		for _, sub := range []string{"img", "assets"} {
			if err := os.MkdirAll(filepath.Join(tree.ProjectsDir(), p.Slug, sub), os.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create folders for %s: %w", p.Slug, err)
			}
		}
		res.ProjectFolders++
	}
	return res, nil
}

// Extract unpacks archive into dst and returns the directory holding the
// images: dst/images when the archive had a top-level images folder.
func Extract(archive, dst string, progress io.Writer) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", archive, err)
	}
	defer zr.Close()

	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(zr.File),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Unpacking images"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	root, err := filepath.Abs(dst)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dst, err)
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", root, err)
	}
	for _, f := range zr.File {
		if err := extractOne(f, root); err != nil {
			return "", err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if info, err := os.Stat(filepath.Join(root, "images")); err == nil && info.IsDir() {
		return filepath.Join(root, "images"), nil
	}
	return root, nil
}

func extractOne(f *zip.File, root string) error {
	target := filepath.Join(root, filepath.FromSlash(f.Name))
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return fmt.Errorf("archive entry %q escapes %s", f.Name, root)
	}
	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, os.ModePerm)
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return nil
}

// CleanJunk deletes the macOS metadata that zips made on a Mac carry: a
// sibling __MACOSX folder, .DS_Store files and AppleDouble ._ files. It
// returns how many files were removed.
func CleanJunk(dir string) (int, error) {
	if err := os.RemoveAll(filepath.Join(filepath.Dir(dir), "__MACOSX")); err != nil {
		return 0, fmt.Errorf("removing __MACOSX: %w", err)
	}
	removed := 0
	for _, pattern := range junkPatterns {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return removed, fmt.Errorf("matching %s: %w", pattern, err)
		}
		for _, m := range matches {
			if err := os.Remove(filepath.Join(dir, filepath.FromSlash(m))); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// WriteInventory lists every image under dir into a CSV sorted by
// lower-cased filename and returns the number of rows written.
func WriteInventory(dir, out string) (int, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), imagePattern, doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("listing images in %s: %w", dir, err)
	}
	slices.SortStableFunc(matches, func(a, b string) int {
		return strings.Compare(strings.ToLower(path.Base(a)), strings.ToLower(path.Base(b)))
	})

	if err := os.MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", filepath.Dir(out), err)
	}
	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "relative_path", "ext", "bytes"}); err != nil {
		return 0, fmt.Errorf("writing %s: %w", out, err)
	}
	for _, rel := range matches {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", rel, err)
		}
		name := path.Base(rel)
		if err := w.Write([]string{name, rel, filepath.Ext(name), strconv.FormatInt(info.Size(), 10)}); err != nil {
			return 0, fmt.Errorf("writing %s: %w", out, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("writing %s: %w", out, err)
	}
	return len(matches), nil
}
