// Package projects maintains the works/projects tree and projects.csv: it
// audits and repairs project folders, renumbers gallery files, keeps the
// card grids in the hand-edited pages in sync and rewrites stale links.
package projects

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hxj7031gino/my-cv/internal/model"
)

const (
	CSVName     = "projects.csv"
	TemplateDir = "_template-project"
	trashPrefix = "_trash_invalid_"
	stampLayout = "20060102-150405"
)

var csvHeader = []string{"project_slug", "title", "year"}

// slugPattern is p-YYYY-NNN-words.
var slugPattern = regexp.MustCompile(`^p-(\d{4})-(\d{3})-([a-z0-9]+(?:-[a-z0-9]+)*)$`)

// Tree locates the portfolio's maintenance files under Root.
type Tree struct {
	Root string
}

func (t Tree) ProjectsDir() string { return filepath.Join(t.Root, "works", "projects") }
func (t Tree) CSVPath() string     { return filepath.Join(t.Root, CSVName) }
func (t Tree) ReportPath() string {
	return filepath.Join(t.Root, "inbox", "project_audit_report.txt")
}

// requireProjectsDir fails when works/projects is absent.
func (t Tree) requireProjectsDir() error {
	info, err := os.Stat(t.ProjectsDir())
	if err != nil {
		return fmt.Errorf("works/projects not found under %s: %w", t.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", t.ProjectsDir())
	}
	return nil
}

// Slug is a parsed project folder name.
type Slug struct {
	Year string
	Seq  string
	Name string
}

// ParseSlug splits a p-YYYY-NNN-words slug.
func ParseSlug(s string) (Slug, bool) {
	m := slugPattern.FindStringSubmatch(s)
	if m == nil {
		return Slug{}, false
	}
	return Slug{Year: m[1], Seq: m[2], Name: m[3]}, true
}

// TitleFromSlug turns p-2024-001-the-awarded into "The Awarded". Slugs that
// do not match the pattern are returned unchanged.
func TitleFromSlug(s string) string {
	parsed, ok := ParseSlug(s)
	if !ok {
		return s
	}
	return cases.Title(language.English).String(strings.ReplaceAll(parsed.Name, "-", " "))
}

// ReadCSV loads projects.csv, skipping rows without a slug.
func ReadCSV(path string) ([]model.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []model.Project
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		slug := field(rec, "project_slug")
		if slug == "" {
			continue
		}
		out = append(out, model.Project{Slug: slug, Title: field(rec, "title"), Year: field(rec, "year")})
	}
	return out, nil
}

// WriteCSV writes projects with the standard header.
func WriteCSV(path string, projects []model.Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, p := range projects {
		if err := w.Write([]string{p.Slug, p.Title, p.Year}); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Backup copies path to path.bak.<timestamp> and returns the copy's path.
func Backup(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s for backup: %w", path, err)
	}
	bak := path + ".bak." + now.Format(stampLayout)
	if err := os.WriteFile(bak, data, 0644); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", bak, err)
	}
	return bak, nil
}

// writeWithBackup backs up path and then replaces its content.
func writeWithBackup(path, content string, now time.Time) (string, error) {
	bak, err := Backup(path, now)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return bak, nil
}

// projectFolders lists project directories, skipping the template, trash
// folders and hidden entries.
func (t Tree) projectFolders() ([]string, error) {
	entries, err := os.ReadDir(t.ProjectsDir())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.ProjectsDir(), err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == TemplateDir || strings.HasPrefix(name, ".") || strings.HasPrefix(name, trashPrefix) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
