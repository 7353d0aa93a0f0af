// Package site builds the portfolio page: it renders the layout, fills the
// panels and project cards, runs the page's startup sequence (panel
// navigator and gallery) against the document and writes the output tree.
package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/config"
	"github.com/hxj7031gino/my-cv/internal/dom"
	"github.com/hxj7031gino/my-cv/internal/gallery"
	"github.com/hxj7031gino/my-cv/internal/logging"
	"github.com/hxj7031gino/my-cv/internal/model"
	"github.com/hxj7031gino/my-cv/internal/nav"
	"github.com/hxj7031gino/my-cv/internal/projects"
)

const (
	ContentDir     = "content"
	LayoutsDir     = "layouts"
	StaticDir      = "static"
	ImagesDir      = "images"
	WorksDir       = "works"
	LayoutFile     = "index.html"
	ScriptFile     = "script.js"
	panelBodyClass = "panel-body"
)

// ErrUnsafeOutputDir reports an output directory that would take source
// files with it when the build clears it.
var ErrUnsafeOutputDir = errors.New("output directory overlaps the source tree")

//go:embed assets/layout.html
var defaultLayout string

//go:embed assets/script.js
var clientScript []byte

// Builder turns a portfolio source tree into a static site.
type Builder struct {
	// Root is the source tree; conventional directories live under it.
	Root   string
	Config config.Config
	Site   *model.SiteData
	Logger *zap.Logger
}

// Result summarises one build.
type Result struct {
	OutputDir  string
	Panels     int
	Projects   int
	Thumbnails []gallery.Entry
	// Keyless lists gallery files whose names have no digits.
	Keyless []string
}

func (b *Builder) path(parts ...string) string {
	return filepath.Join(append([]string{b.Root}, parts...)...)
}

// Build writes the site into the configured output directory, replacing
// whatever was there.
func (b *Builder) Build() (*Result, error) {
	log := logging.OrNop(b.Logger)
	if b.Site == nil {
		b.Site = &model.SiteData{}
	}
	outputDir := b.Config.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = b.path(outputDir)
	}
	log.Info("starting build", zap.String("outputDir", outputDir), zap.String("siteTitle", b.Config.SiteTitle))

	if err := b.checkOutputDir(outputDir); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	for _, dir := range []struct{ src, dst string }{
		{b.path(StaticDir), outputDir},
		{b.path(ImagesDir), filepath.Join(outputDir, ImagesDir)},
		{b.path(WorksDir), filepath.Join(outputDir, WorksDir)},
	} {
		if _, err := os.Stat(dir.src); os.IsNotExist(err) {
			log.Debug("directory not found, skipping copy", zap.String("dir", dir.src))
			continue
		}
		if err := copyDirContents(dir.src, dir.dst, log); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", dir.src, err)
		}
		log.Debug("copied directory", zap.String("from", dir.src), zap.String("to", dir.dst))
	}

	doc, err := b.renderLayout()
	if err != nil {
		return nil, err
	}

	res := &Result{OutputDir: outputDir}

	panels, err := LoadPanels(b.path(ContentDir), NewMarkdown(), log)
	if err != nil {
		return nil, err
	}
	b.Site.Panels = panels
	for _, p := range nav.Panels {
		pc, ok := panels[p.String()]
		if !ok {
			continue
		}
		if err := insertPanel(doc, p, pc); err != nil {
			return nil, err
		}
		res.Panels++
	}

	if err := b.insertProjects(doc, log); err != nil {
		return nil, err
	}
	res.Projects = len(b.Site.Projects)

	manifest, err := gallery.LoadManifest(b.manifestPath())
	if err != nil {
		return nil, err
	}
	prefix := b.Config.Gallery.Prefix
	if prefix == "" {
		prefix = manifest.Prefix
	}

	entries, err := Startup(doc, manifest.Images, prefix)
	if err != nil {
		return nil, fmt.Errorf("page startup failed: %w", err)
	}
	b.Site.Gallery = make([]string, len(entries))
	for i, e := range entries {
		b.Site.Gallery[i] = gallery.Source(prefix, e.Filename)
	}
	res.Thumbnails = entries
	res.Keyless = gallery.Keyless(entries)
	for _, f := range res.Keyless {
		log.Warn("gallery file has no digits; placed after numbered images", zap.String("file", f))
	}

	var page bytes.Buffer
	if err := doc.Render(&page); err != nil {
		return nil, err
	}
	indexPath := filepath.Join(outputDir, LayoutFile)
	if err := os.WriteFile(indexPath, page.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", indexPath, err)
	}

	scriptPath := filepath.Join(outputDir, ScriptFile)
	if _, err := os.Stat(scriptPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(scriptPath, clientScript, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", scriptPath, err)
		}
	}

	log.Info("build completed",
		zap.String("page", indexPath),
		zap.Int("panels", res.Panels),
		zap.Int("projects", res.Projects),
		zap.Int("images", len(entries)))
	return res, nil
}

// checkOutputDir refuses the root, any ancestor of it and anything at or
// under a source directory.
func (b *Builder) checkOutputDir(outputDir string) error {
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory '%s': %w", outputDir, err)
	}
	root, err := filepath.Abs(b.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve source root '%s': %w", b.Root, err)
	}
	if within(out, root) {
		return fmt.Errorf("output directory '%s' contains the source root: %w", out, ErrUnsafeOutputDir)
	}
	for _, dir := range []string{ContentDir, LayoutsDir, StaticDir, ImagesDir, WorksDir} {
		if src := filepath.Join(root, dir); within(src, out) {
			return fmt.Errorf("output directory '%s' is inside %s: %w", out, src, ErrUnsafeOutputDir)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Startup runs the page's content-ready sequence on doc: the navigator is
// bound and shows Work, and the gallery is built from images. Any missing
// surface element aborts the sequence.
func Startup(doc *dom.Document, images []string, prefix string) ([]gallery.Entry, error) {
	var (
		entries []gallery.Entry
		failure error
	)
	sub := doc.Listen(doc.Root(), dom.EventReady, func(*dom.Event) {
		navigator := nav.New()
		if err := nav.Bind(doc, navigator, nav.DefaultBindings); err != nil {
			failure = err
			return
		}
		navigator.Show(nav.Work)

		r, err := gallery.NewRenderer(doc, gallery.NewLightbox(), prefix, gallery.DefaultSurface)
		if err != nil {
			failure = err
			return
		}
		entries = r.Build(images)
	})
	defer sub.Cancel()

	doc.Ready()
	if failure != nil {
		return nil, failure
	}
	return entries, nil
}

func (b *Builder) renderLayout() (*dom.Document, error) {
	src := defaultLayout
	layoutPath := b.path(LayoutsDir, LayoutFile)
	if data, err := os.ReadFile(layoutPath); err == nil {
		src = string(data)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read layout '%s': %w", layoutPath, err)
	}

	tmpl, err := template.New(LayoutFile).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	data := model.PageData{
		SiteTitle: b.Config.SiteTitle,
		BaseURL:   b.Config.BaseURL,
		Params:    b.Site.Config,
	}
	for _, p := range nav.Panels {
		data.Nav = append(data.Nav, model.NavLink{
			ID:    nav.DefaultBindings[p].Trigger,
			Href:  "#" + nav.DefaultBindings[p].Container,
			Title: p.Title(),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute layout: %w", err)
	}
	return dom.Parse(&buf)
}

func (b *Builder) insertProjects(doc *dom.Document, log *zap.Logger) error {
	csvPath := b.path(projects.CSVName)
	ps, err := projects.ReadCSV(csvPath)
	if errors.Is(err, fs.ErrNotExist) {
		b.Site.Projects = nil
		return nil
	}
	if err != nil {
		return err
	}
	b.Site.Projects = ps

	grid, err := doc.FirstByClass(projects.WorkGridClass)
	if err != nil {
		log.Warn("layout has no work grid, project cards not rendered", zap.Error(err))
		return nil
	}
	cards, err := projects.WorkCards(ps)
	if err != nil {
		return err
	}
	dom.ReplaceChildren(grid)
	return doc.AppendHTML(grid, cards)
}

func (b *Builder) manifestPath() string {
	p := b.Config.Gallery.Manifest
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return b.path(p)
}

// insertPanel appends the rendered markdown to the panel's .panel-body, or
// to the panel container itself when it has none.
func insertPanel(doc *dom.Document, p nav.Panel, pc *model.PanelContent) error {
	container, err := doc.ByID(nav.DefaultBindings[p].Container)
	if err != nil {
		return fmt.Errorf("%s panel: %w", p, err)
	}
	target := container
	if body, err := dom.FirstByClassIn(container, panelBodyClass); err == nil {
		target = body
	}
	return doc.AppendHTML(target, string(pc.ContentHTML))
}
