package dom

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><body>
<nav><a id="nav-home" href="index.html"><span id="label">Home</span></a></nav>
<div id="overlay" class="lightbox"><img id="photo" src="a.jpg"></div>
<section id="panel" style="color: red; display: none"></section>
</body></html>`

func parsePage(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestByID(t *testing.T) {
	doc := parsePage(t)

	n, err := doc.ByID("photo")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", Attr(n, "src"))

	_, err = doc.ByID("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "#missing")
}

func TestFirstByClass(t *testing.T) {
	doc := parsePage(t)

	n, err := doc.FirstByClass("lightbox")
	require.NoError(t, err)
	assert.Equal(t, "overlay", Attr(n, "id"))

	_, err = doc.FirstByClass("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStyle(t *testing.T) {
	doc := parsePage(t)
	n, err := doc.ByID("panel")
	require.NoError(t, err)

	assert.Equal(t, DisplayNone, Display(n))
	assert.Equal(t, "red", Style(n, "color"))

	SetDisplay(n, DisplayBlock)
	assert.Equal(t, DisplayBlock, Display(n))
	assert.Equal(t, "color: red; display: block", Attr(n, "style"))

	SetStyle(n, "margin", "0")
	assert.Equal(t, "0", Style(n, "margin"))
}

func TestClasses(t *testing.T) {
	n := CreateElement("div")

	AddClass(n, "gallery-item")
	AddClass(n, "active")
	AddClass(n, "active")
	assert.Equal(t, "gallery-item active", Attr(n, "class"))
	assert.True(t, HasClass(n, "active"))

	RemoveClass(n, "active")
	assert.False(t, HasClass(n, "active"))
	assert.Equal(t, "gallery-item", Attr(n, "class"))
}

func TestDispatchBubbles(t *testing.T) {
	doc := parsePage(t)
	photo, _ := doc.ByID("photo")
	overlay, _ := doc.ByID("overlay")

	var seen []string
	doc.Listen(photo, EventClick, func(e *Event) {
		seen = append(seen, "photo")
		assert.Same(t, photo, e.Target)
		assert.Same(t, photo, e.CurrentTarget)
	})
	doc.Listen(overlay, EventClick, func(e *Event) {
		seen = append(seen, "overlay")
		assert.Same(t, photo, e.Target)
		assert.Same(t, overlay, e.CurrentTarget)
	})

	doc.Click(photo)
	assert.Equal(t, []string{"photo", "overlay"}, seen)
}

func TestStopPropagation(t *testing.T) {
	doc := parsePage(t)
	photo, _ := doc.ByID("photo")
	overlay, _ := doc.ByID("overlay")

	reached := false
	doc.Listen(photo, EventClick, func(e *Event) { e.StopPropagation() })
	doc.Listen(overlay, EventClick, func(*Event) { reached = true })

	doc.Click(photo)
	assert.False(t, reached)
}

func TestClickFollowsLinkUnlessPrevented(t *testing.T) {
	doc := parsePage(t)
	label, _ := doc.ByID("label")
	link, _ := doc.ByID("nav-home")

	doc.Click(label)
	assert.Equal(t, []string{"index.html"}, doc.Navigations())

	doc.Listen(link, EventClick, func(e *Event) { e.PreventDefault() })
	ev := doc.Click(label)
	assert.True(t, ev.DefaultPrevented())
	assert.Len(t, doc.Navigations(), 1)
}

func TestListenCancel(t *testing.T) {
	doc := parsePage(t)
	photo, _ := doc.ByID("photo")

	calls := 0
	sub := doc.Listen(photo, EventClick, func(*Event) { calls++ })
	doc.Click(photo)
	sub.Cancel()
	doc.Click(photo)

	assert.Equal(t, 1, calls)
}

func TestReady(t *testing.T) {
	doc := parsePage(t)

	fired := 0
	doc.Listen(doc.Root(), EventReady, func(*Event) { fired++ })
	doc.Ready()

	assert.Equal(t, 1, fired)
}

func TestAppendHTMLAndRender(t *testing.T) {
	doc := parsePage(t)
	panel, _ := doc.ByID("panel")

	require.NoError(t, doc.AppendHTML(panel, "<h2>Statement</h2><p>Hello</p>"))
	assert.Equal(t, "StatementHello", TextContent(panel))

	item := CreateElement("div")
	item.AppendChild(CreateText("x"))
	ReplaceChildren(panel, item)
	assert.Equal(t, "x", TextContent(panel))

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.Contains(t, buf.String(), `<section id="panel" style="color: red; display: none"><div>x</div></section>`)
}
