package projects

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

var twoDigitGallery = regexp.MustCompile(`^(\d{2})\.(jpg|jpeg|png|webp|JPG|JPEG|PNG|WEBP)$`)

// refExts are the extensions whose img/NN references get rewritten.
var refExts = []string{"jpg", "jpeg", "png", "webp"}

// Rename records one gallery file move.
type Rename struct {
	From string
	To   string
}

// NormalizeResult describes what NormalizeGallery did for one project.
type NormalizeResult struct {
	Slug        string
	Renamed     []Rename
	PageUpdated bool
	PageBackup  string
	// Skipped explains why nothing happened, "" otherwise.
	Skipped string
}

// NormalizeGallery renames a project's two-digit gallery files (01.JPG) to
// three digits with a lower-case extension (001.jpg), then rewrites the
// matching img/NN.ext references in the project page.
func NormalizeGallery(t Tree, slug string, now time.Time) (*NormalizeResult, error) {
	if err := t.requireProjectsDir(); err != nil {
		return nil, err
	}
	res := &NormalizeResult{Slug: slug}
	proj := filepath.Join(t.ProjectsDir(), slug)
	imgDir := filepath.Join(proj, "img")

	entries, err := os.ReadDir(imgDir)
	if err != nil {
		res.Skipped = "no img dir"
		return res, nil
	}

	refs := make(map[string]string)
	var pending []Rename
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := twoDigitGallery.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		num2, ext := m[1], m[2]
		num3 := "0" + num2
		pending = append(pending, Rename{From: e.Name(), To: num3 + "." + strings.ToLower(ext)})
		for _, x := range refExts {
			refs["img/"+num2+"."+x] = "img/" + num3 + "." + x
		}
	}
	if len(pending) == 0 {
		res.Skipped = "no 2-digit gallery files"
		return res, nil
	}

	// Two phases so 01.jpg -> 001.jpg never collides with a file mid-rename.
	for _, r := range pending {
		if err := os.Rename(filepath.Join(imgDir, r.From), filepath.Join(imgDir, "__tmp__"+r.From)); err != nil {
			return nil, fmt.Errorf("renaming %s: %w", r.From, err)
		}
	}
	for _, r := range pending {
		final := r.To
		if _, err := os.Stat(filepath.Join(imgDir, final)); err == nil {
			ext := filepath.Ext(final)
			final = strings.TrimSuffix(final, ext) + "_dup" + ext
		}
		if err := os.Rename(filepath.Join(imgDir, "__tmp__"+r.From), filepath.Join(imgDir, final)); err != nil {
			return nil, fmt.Errorf("renaming %s to %s: %w", r.From, final, err)
		}
		res.Renamed = append(res.Renamed, Rename{From: r.From, To: final})
	}

	page := filepath.Join(proj, "index.html")
	data, err := os.ReadFile(page)
	if err != nil {
		res.Skipped = "no index.html to update"
		return res, nil
	}
	text := string(data)
	olds := make([]string, 0, len(refs))
	for old := range refs {
		olds = append(olds, old)
	}
	slices.Sort(olds)
	for _, old := range olds {
		newRef := refs[old]
		dir, file, _ := strings.Cut(old, "/")
		text = strings.ReplaceAll(text, old, newRef)
		text = strings.ReplaceAll(text, strings.ToUpper(old), newRef)
		text = strings.ReplaceAll(text, dir+"/"+strings.ToUpper(file), newRef)
	}
	if text != string(data) {
		if res.PageBackup, err = writeWithBackup(page, text, now); err != nil {
			return nil, err
		}
		res.PageUpdated = true
	}
	return res, nil
}
