package gallery

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/hxj7031gino/my-cv/internal/dom"
)

// Surface names the elements the renderer works against.
type Surface struct {
	GridClass  string
	OverlayID  string
	ImageID    string
	CloseClass string
}

// DefaultSurface matches the bundled layout.
var DefaultSurface = Surface{
	GridClass:  "gallery-grid",
	OverlayID:  "lightbox",
	ImageID:    "lightbox-img",
	CloseClass: "close-btn",
}

const (
	itemClass   = "gallery-item"
	activeClass = "active"
)

// Renderer populates the gallery grid and connects it to a Lightbox.
type Renderer struct {
	doc      *dom.Document
	lightbox *Lightbox
	prefix   string

	grid    *html.Node
	overlay *html.Node
	image   *html.Node
	close   *html.Node
}

// NewRenderer resolves the surface elements and wires the lightbox's close
// control and background dismissal.
func NewRenderer(doc *dom.Document, lb *Lightbox, prefix string, s Surface) (*Renderer, error) {
	r := &Renderer{doc: doc, lightbox: lb, prefix: prefix}

	var err error
	if r.grid, err = doc.FirstByClass(s.GridClass); err != nil {
		return nil, fmt.Errorf("gallery grid: %w", err)
	}
	if r.overlay, err = doc.ByID(s.OverlayID); err != nil {
		return nil, fmt.Errorf("lightbox overlay: %w", err)
	}
	if r.image, err = doc.ByID(s.ImageID); err != nil {
		return nil, fmt.Errorf("lightbox image: %w", err)
	}
	if r.close, err = doc.FirstByClass(s.CloseClass); err != nil {
		return nil, fmt.Errorf("lightbox close control: %w", err)
	}

	lb.Subscribe(func(st State) {
		if st.Active {
			dom.AddClass(r.overlay, activeClass)
			dom.SetAttr(r.image, "src", st.Source)
			return
		}
		dom.RemoveClass(r.overlay, activeClass)
	})

	doc.Listen(r.close, dom.EventClick, func(*dom.Event) {
		lb.Close()
	})
	doc.Listen(r.overlay, dom.EventClick, func(e *dom.Event) {
		// Only the bare background dismisses; clicks on the image bubble here too.
		if e.Target == r.overlay {
			lb.Close()
		}
	})
	return r, nil
}

// Build sorts filenames and appends one lazily loaded thumbnail per entry.
// Each call appends again; the page calls it once at startup.
func (r *Renderer) Build(filenames []string) []Entry {
	entries := Sort(filenames)
	for _, e := range entries {
		src := Source(r.prefix, e.Filename)

		item := dom.CreateElement("div")
		dom.SetAttr(item, "class", itemClass)

		img := dom.CreateElement("img")
		dom.SetAttr(img, "src", src)
		dom.SetAttr(img, "loading", "lazy")
		item.AppendChild(img)
		r.grid.AppendChild(item)

		r.doc.Listen(img, dom.EventClick, func(*dom.Event) {
			r.lightbox.Open(src)
		})
	}
	return entries
}

// Thumbnails returns the thumbnail images in grid order.
func (r *Renderer) Thumbnails() []*html.Node {
	var imgs []*html.Node
	for item := r.grid.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || !dom.HasClass(item, itemClass) {
			continue
		}
		for c := item.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "img" {
				imgs = append(imgs, c)
			}
		}
	}
	return imgs
}

// Overlay returns the lightbox overlay element.
func (r *Renderer) Overlay() *html.Node { return r.overlay }

// Image returns the lightbox's image slot.
func (r *Renderer) Image() *html.Node { return r.image }

// CloseControl returns the lightbox close control.
func (r *Renderer) CloseControl() *html.Node { return r.close }
