package projects

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Status grades one audited project.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

var (
	galleryFile  = regexp.MustCompile(`^\d{2,3}\.(jpg|jpeg|png|webp|JPG|JPEG|PNG|WEBP)$`)
	twoDigitFile = regexp.MustCompile(`^\d{2}\.`)
	threeDigit   = regexp.MustCompile(`^\d{3}\.`)
)

// ProjectResult lists what is wrong with one project folder.
type ProjectResult struct {
	Slug     string
	Issues   []string
	Warnings []string
}

// Status is FAIL with any issue, WARN with only warnings, OK otherwise.
func (r ProjectResult) Status() Status {
	switch {
	case len(r.Issues) > 0:
		return StatusFail
	case len(r.Warnings) > 0:
		return StatusWarn
	default:
		return StatusOK
	}
}

// Report is the outcome of Audit.
type Report struct {
	Generated time.Time
	Root      string

	CSVPresent     bool
	CSVSlugs       int
	FolderSlugs    int
	MissingFolders []string
	ExtraFolders   []string

	Projects []ProjectResult
}

// Count returns how many projects ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, p := range r.Projects {
		if p.Status() == s {
			n++
		}
	}
	return n
}

// Audit checks every project folder and compares the set against
// projects.csv.
func Audit(t Tree, now time.Time) (*Report, error) {
	if err := t.requireProjectsDir(); err != nil {
		return nil, err
	}
	folders, err := t.projectFolders()
	if err != nil {
		return nil, err
	}

	rep := &Report{Generated: now, Root: t.Root, FolderSlugs: len(folders)}

	rows, err := ReadCSV(t.CSVPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		rep.CSVPresent = true
		csvSlugs := make(map[string]bool, len(rows))
		for _, p := range rows {
			csvSlugs[p.Slug] = true
		}
		folderSlugs := make(map[string]bool, len(folders))
		for _, f := range folders {
			folderSlugs[f] = true
			if !csvSlugs[f] {
				rep.ExtraFolders = append(rep.ExtraFolders, f)
			}
		}
		for s := range csvSlugs {
			if !folderSlugs[s] {
				rep.MissingFolders = append(rep.MissingFolders, s)
			}
		}
		slices.Sort(rep.MissingFolders)
		rep.CSVSlugs = len(csvSlugs)
	}

	for _, f := range folders {
		rep.Projects = append(rep.Projects, auditOne(filepath.Join(t.ProjectsDir(), f)))
	}
	return rep, nil
}

func auditOne(dir string) ProjectResult {
	res := ProjectResult{Slug: filepath.Base(dir)}
	if _, ok := ParseSlug(res.Slug); !ok {
		res.Warnings = append(res.Warnings, "Slug not matching recommended pattern p-YYYY-NNN-slug: "+res.Slug)
	}
	if !fileExists(filepath.Join(dir, "index.html")) {
		res.Issues = append(res.Issues, "Missing project page: index.html (expected works/projects/<slug>/index.html)")
	}

	imgDir := filepath.Join(dir, "img")
	entries, err := os.ReadDir(imgDir)
	if err != nil {
		res.Issues = append(res.Issues, "Missing img/ folder")
		return res
	}

	checkRequired := func(name string) {
		exact, folded := "", ""
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if e.Name() == name {
				exact = name
			} else if strings.EqualFold(e.Name(), name) {
				folded = e.Name()
			}
		}
		switch {
		case exact != "":
		case folded != "":
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s exists but with different casing: %s (recommend rename to %s)", name, folded, name))
		case name == "hero.jpg" && hasFold(entries, "hero.jpg.jpg") != "":
			res.Issues = append(res.Issues, fmt.Sprintf("Found %s but missing hero.jpg (rename hero.jpg.jpg -> hero.jpg)", hasFold(entries, "hero.jpg.jpg")))
		default:
			res.Issues = append(res.Issues, "Missing img/"+name)
		}
	}
	checkRequired("thumb.jpg")
	checkRequired("hero.jpg")

	var gallery []string
	for _, e := range entries {
		if !e.IsDir() && galleryFile.MatchString(e.Name()) {
			gallery = append(gallery, e.Name())
		}
	}
	if len(gallery) == 0 {
		res.Warnings = append(res.Warnings, "No gallery images like 01.jpg/02.jpg found (optional but recommended)")
		return res
	}
	hasTwo := slices.ContainsFunc(gallery, twoDigitFile.MatchString)
	hasThree := slices.ContainsFunc(gallery, threeDigit.MatchString)
	if hasTwo && hasThree {
		res.Warnings = append(res.Warnings, "Gallery numbering mixes 2-digit and 3-digit (e.g., 01.jpg and 010.jpg). Recommend unify.")
	}
	return res
}

func hasFold(entries []os.DirEntry, name string) string {
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), name) {
			return e.Name()
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Write renders the plain-text report.
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Project Audit Report - %s\n", r.Generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Root: %s\n\n", r.Root)

	if r.CSVPresent {
		b.WriteString("CSV vs Folder Consistency\n")
		fmt.Fprintf(&b, "- projects.csv slugs: %d\n", r.CSVSlugs)
		fmt.Fprintf(&b, "- folder slugs:     %d\n", r.FolderSlugs)
		if len(r.MissingFolders) > 0 {
			fmt.Fprintf(&b, "FAIL In CSV but folder missing (%d):\n", len(r.MissingFolders))
			for _, s := range r.MissingFolders {
				fmt.Fprintf(&b, "  - %s\n", s)
			}
		} else {
			b.WriteString("OK All CSV slugs have folders.\n")
		}
		if len(r.ExtraFolders) > 0 {
			fmt.Fprintf(&b, "WARN Folder exists but not in CSV (%d):\n", len(r.ExtraFolders))
			for _, s := range r.ExtraFolders {
				fmt.Fprintf(&b, "  - %s\n", s)
			}
		} else {
			b.WriteString("OK No extra folders outside CSV.\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("WARN projects.csv not found (skipping CSV consistency check).\n\n")
	}

	b.WriteString("Per-project Checks\n")
	for _, p := range r.Projects {
		fmt.Fprintf(&b, "%-4s  %s\n", p.Status(), p.Slug)
		for _, it := range p.Issues {
			fmt.Fprintf(&b, "   - ISSUE: %s\n", it)
		}
		for _, wt := range p.Warnings {
			fmt.Fprintf(&b, "   - WARN:  %s\n", wt)
		}
		b.WriteString("\n")
	}

	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "- Total projects checked: %d\n", len(r.Projects))
	fmt.Fprintf(&b, "- FAIL (must fix):        %d\n", r.Count(StatusFail))
	fmt.Fprintf(&b, "- WARN (recommended):     %d\n", r.Count(StatusWarn))

	_, err := io.WriteString(w, b.String())
	return err
}

// Save writes the report to the tree's inbox.
func (r *Report) Save(t Tree) (string, error) {
	path := t.ReportPath()
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer f.Close()
	if err := r.Write(f); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}
