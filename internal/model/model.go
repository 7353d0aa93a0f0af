package model

import "html/template"

// PanelContent is a rendered content/*.md file destined for one panel.
type PanelContent struct {
	Panel       string
	Title       string
	SourcePath  string
	Markdown    []byte
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
}

// Project is one row of projects.csv.
type Project struct {
	Slug  string
	Title string
	Year  string
}

// DisplayTitle falls back to the slug when no title was recorded.
func (p Project) DisplayTitle() string {
	if p.Title == "" {
		return p.Slug
	}
	return p.Title
}

// Href is the project page relative to the site root.
func (p Project) Href() string {
	return "works/projects/" + p.Slug + "/index.html"
}

// Thumb is the project's card image relative to the site root.
func (p Project) Thumb() string {
	return "works/projects/" + p.Slug + "/img/thumb.jpg"
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Config   map[string]interface{}
	Panels   map[string]*PanelContent
	Projects []Project
	// Gallery holds the image sources in display order.
	Gallery []string
}
