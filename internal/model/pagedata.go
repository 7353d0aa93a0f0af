package model

// NavLink is one panel trigger in the page header.
type NavLink struct {
	ID    string
	Href  string
	Title string
}

// PageData is passed to the page layout template.
type PageData struct {
	SiteTitle string
	BaseURL   string
	Params    map[string]interface{}
	Nav       []NavLink
}
