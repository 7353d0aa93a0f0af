package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/hxj7031gino/my-cv/internal/model"
	"github.com/hxj7031gino/my-cv/internal/nav"
)

// NewMarkdown returns the goldmark configuration used for panel content.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)
}

// LoadPanels renders every Markdown file in dir into the panel it targets.
// The panel comes from the "panel" frontmatter key, else the file name
// (statement.md). Files naming no known panel are skipped with a warning.
// A missing dir yields no panels.
func LoadPanels(dir string, md goldmark.Markdown, log *zap.Logger) (map[string]*model.PanelContent, error) {
	panels := make(map[string]*model.PanelContent)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return panels, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		fileBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", path, err)
		}

		var fmData map[string]interface{}
		body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fmData)
		if err != nil {
			log.Warn("could not parse frontmatter, treating as pure markdown", zap.String("path", path), zap.Error(err))
			body = fileBytes
		}
		if fmData == nil {
			fmData = make(map[string]interface{})
		}

		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if p, ok := fmData["panel"].(string); ok && p != "" {
			name = p
		}
		panel, err := nav.ParsePanel(name)
		if err != nil {
			log.Warn("content file targets no panel, skipping", zap.String("path", path), zap.String("panel", name))
			return nil
		}

		var htmlBuffer bytes.Buffer
		if err := md.Convert(body, &htmlBuffer); err != nil {
			return fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", path, err)
		}

		title := panel.Title()
		if t, ok := fmData["title"].(string); ok && t != "" {
			title = t
		}

		if prev, ok := panels[panel.String()]; ok {
			log.Warn("panel content defined twice, keeping the later file",
				zap.String("panel", panel.String()), zap.String("previous", prev.SourcePath), zap.String("path", path))
		}
		panels[panel.String()] = &model.PanelContent{
			Panel:       panel.String(),
			Title:       title,
			SourcePath:  path,
			Markdown:    body,
			ContentHTML: template.HTML(htmlBuffer.String()),
			Frontmatter: fmData,
		}
		log.Debug("loaded panel content", zap.String("panel", panel.String()), zap.String("path", path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", err)
	}
	return panels, nil
}
