package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Display values used for panels.
const (
	DisplayBlock = "block"
	DisplayNone  = "none"
)

type declaration struct {
	prop, value string
}

// Style returns the inline value of prop, or "" when unset.
func Style(n *html.Node, prop string) string {
	for _, d := range parseStyle(Attr(n, "style")) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets one inline declaration, keeping the others in place.
func SetStyle(n *html.Node, prop, value string) {
	decls := parseStyle(Attr(n, "style"))
	replaced := false
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, declaration{prop: prop, value: value})
	}
	SetAttr(n, "style", formatStyle(decls))
}

// Display is shorthand for Style(n, "display").
func Display(n *html.Node) string {
	return Style(n, "display")
}

// SetDisplay is shorthand for SetStyle(n, "display", value).
func SetDisplay(n *html.Node, value string) {
	SetStyle(n, "display", value)
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// HasClass reports whether class is in n's class list.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class unless already present.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	classes := strings.Fields(Attr(n, "class"))
	SetAttr(n, "class", strings.Join(append(classes, class), " "))
}

// RemoveClass drops every occurrence of class.
func RemoveClass(n *html.Node, class string) {
	classes := strings.Fields(Attr(n, "class"))
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}
