// Package dom is the page's visual surface: an HTML node tree with element
// lookup, attribute/style/class mutation and a synchronous event system.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hxj7031gino/my-cv/internal/event"
)

// ErrNotFound is returned when a looked-up element does not exist.
var ErrNotFound = errors.New("element not found")

// Document wraps a parsed HTML tree together with its event listeners.
type Document struct {
	root        *html.Node
	listeners   map[*html.Node]map[string]*event.Bus[*Event]
	navigations []string
}

// New wraps an existing tree. root should be an html.DocumentNode.
func New(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string]*event.Bus[*Event]),
	}
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return New(root), nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}

// ByID returns the element whose id attribute equals id.
func (d *Document) ByID(id string) (*html.Node, error) {
	n := find(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	})
	if n == nil {
		return nil, fmt.Errorf("#%s: %w", id, ErrNotFound)
	}
	return n, nil
}

// FirstByClass returns the first element, in document order, carrying class.
func (d *Document) FirstByClass(class string) (*html.Node, error) {
	return FirstByClassIn(d.root, class)
}

// FirstByClassIn is FirstByClass restricted to root and its descendants.
func FirstByClassIn(root *html.Node, class string) (*html.Node, error) {
	n := find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	})
	if n == nil {
		return nil, fmt.Errorf(".%s: %w", class, ErrNotFound)
	}
	return n, nil
}

// AppendHTML parses fragment in the context of parent and appends the
// resulting nodes to it.
func (d *Document) AppendHTML(parent *html.Node, fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// ReplaceChildren removes every child of parent, then appends children.
func ReplaceChildren(parent *html.Node, children ...*html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		parent.AppendChild(c)
	}
}

// CreateElement returns a detached element node.
func CreateElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateText returns a detached text node.
func CreateText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr returns the value of key on n, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets or adds key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// TextContent concatenates the text nodes below n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return false
	})
	return b.String()
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if match(c) {
			found = c
			return true
		}
		return false
	})
	return found
}

// walk visits n and its descendants depth-first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}
