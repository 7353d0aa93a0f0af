package projects

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hxj7031gino/my-cv/internal/model"
)

var minimalPage = template.Must(template.New("project").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="../../../style.css" />
</head>
<body>
  <header class="site-header">
    <div class="site-title-wrapper">
      <a class="site-title" href="../../../index.html">{{.SiteTitle}}</a>
    </div>
    <nav class="site-nav">
      <a href="../../../index.html" class="nav-link">Home</a>
      <a href="../../../work.html" class="nav-link">Work</a>
      <a href="../../../statement.html" class="nav-link">Artist Statement</a>
      <a href="../../../biography.html" class="nav-link">Biography</a>
    </nav>
  </header>

  <main class="project-main">
    <h1 class="project-title">{{.Title}}</h1>

    <figure class="project-hero">
      <img src="img/hero.jpg" alt="{{.Title}} hero" />
    </figure>

    <section class="project-gallery">
      <h2 class="project-section-title">Gallery</h2>
      <div class="project-grid">
        <img src="img/001.jpg" alt="{{.Title}} image 001" />
      </div>
    </section>

    <section class="project-meta">
      <h2 class="project-section-title">Information</h2>
      <div class="project-meta-row"><span>Year</span><span>{{.Year}}</span></div>
      <div class="project-meta-row"><span>Medium</span><span></span></div>
      <div class="project-meta-row"><span>Dimensions</span><span></span></div>
    </section>

    <div class="project-back">
      <a href="../../../work.html">Back to Work</a>
    </div>
  </main>
</body>
</html>
`))

// FixResult summarises a Fix run.
type FixResult struct {
	TrashDir     string
	Moved        []string
	Created      []string
	Skipped      int
	CSVBackup    string
	Rows         int
	UsedTemplate bool
}

// Fix moves folders with invalid slugs into a fresh trash folder, gives
// every valid project an index.html and rewrites projects.csv from the
// valid folders, newest first. Titles and years already in the CSV win
// over ones derived from the slug.
func Fix(t Tree, siteTitle string, now time.Time) (*FixResult, error) {
	if err := t.requireProjectsDir(); err != nil {
		return nil, err
	}
	folders, err := t.projectFolders()
	if err != nil {
		return nil, err
	}

	res := &FixResult{TrashDir: trashPrefix + now.Format(stampLayout)}
	trash := filepath.Join(t.ProjectsDir(), res.TrashDir)
	if err := os.MkdirAll(trash, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create trash folder: %w", err)
	}

	var valid []string
	for _, f := range folders {
		if _, ok := ParseSlug(f); ok {
			valid = append(valid, f)
			continue
		}
		if err := os.Rename(filepath.Join(t.ProjectsDir(), f), filepath.Join(trash, f)); err != nil {
			return nil, fmt.Errorf("failed to move %s to trash: %w", f, err)
		}
		res.Moved = append(res.Moved, f)
	}

	tmpl, err := os.ReadFile(filepath.Join(t.ProjectsDir(), TemplateDir, "index.html"))
	switch {
	case err == nil:
		res.UsedTemplate = true
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading project template: %w", err)
	}

	existing := make(map[string]model.Project)
	rows, err := ReadCSV(t.CSVPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, p := range rows {
		existing[p.Slug] = p
	}

	var out []model.Project
	for _, slug := range valid {
		p := model.Project{Slug: slug, Title: TitleFromSlug(slug)}
		parsed, _ := ParseSlug(slug)
		p.Year = parsed.Year
		if old, ok := existing[slug]; ok {
			if old.Title != "" {
				p.Title = old.Title
			}
			if old.Year != "" {
				p.Year = old.Year
			}
		}
		out = append(out, p)

		page := filepath.Join(t.ProjectsDir(), slug, "index.html")
		if fileExists(page) {
			res.Skipped++
			continue
		}
		content := tmpl
		if !res.UsedTemplate {
			var buf bytes.Buffer
			if err := minimalPage.Execute(&buf, struct {
				Title, Year, SiteTitle string
			}{p.Title, p.Year, siteTitle}); err != nil {
				return nil, fmt.Errorf("rendering page for %s: %w", slug, err)
			}
			content = buf.Bytes()
		}
		if err := os.WriteFile(page, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", page, err)
		}
		res.Created = append(res.Created, slug)
	}

	if fileExists(t.CSVPath()) {
		if res.CSVBackup, err = Backup(t.CSVPath(), now); err != nil {
			return nil, err
		}
	}
	SortNewestFirst(out)
	if err := WriteCSV(t.CSVPath(), out); err != nil {
		return nil, err
	}
	res.Rows = len(out)
	return res, nil
}

// SortNewestFirst orders projects by slug year then sequence, descending.
// Projects with non-conforming slugs go last; ties keep their order.
func SortNewestFirst(ps []model.Project) {
	key := func(p model.Project) string {
		s, ok := ParseSlug(p.Slug)
		if !ok {
			return "0000000"
		}
		return s.Year + s.Seq
	}
	slices.SortStableFunc(ps, func(a, b model.Project) int {
		return strings.Compare(key(b), key(a))
	})
}
