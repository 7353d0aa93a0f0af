package gallery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxj7031gino/my-cv/internal/dom"
)

const surface = `<html><body>
<div class="gallery-grid"></div>
<div id="lightbox" class="lightbox">
  <span class="close-btn">&times;</span>
  <img id="lightbox-img" src="">
</div>
</body></html>`

func newRenderer(t *testing.T) (*dom.Document, *Lightbox, *Renderer) {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(surface))
	require.NoError(t, err)
	lb := NewLightbox()
	r, err := NewRenderer(doc, lb, DefaultPrefix, DefaultSurface)
	require.NoError(t, err)
	return doc, lb, r
}

func TestSortNumeric(t *testing.T) {
	got := Filenames(Sort([]string{"image2.jpg", "image10.jpg", "image1.jpg"}))
	want := []string{"image1.jpg", "image2.jpg", "image10.jpg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
}

func TestSortTiesAndKeyless(t *testing.T) {
	got := Filenames(Sort([]string{"cover.jpg", "b01.jpg", "a1.png", "about.png", "a2.JPG"}))
	want := []string{"a1.png", "b01.jpg", "a2.JPG", "about.png", "cover.jpg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"about.png", "cover.jpg"}, Keyless(Sort(want)))
}

func TestSortLongDigitRuns(t *testing.T) {
	got := Filenames(Sort([]string{"p-2024-002-x.jpg", "99999999999999999999999.jpg", "p-2024-001-x.jpg"}))
	want := []string{"p-2024-001-x.jpg", "p-2024-002-x.jpg", "99999999999999999999999.jpg"}
	assert.Equal(t, want, got)
}

func TestSortDoesNotModifyInput(t *testing.T) {
	in := []string{"image2.jpg", "image1.jpg"}
	Sort(in)
	assert.Equal(t, []string{"image2.jpg", "image1.jpg"}, in)
}

func TestNumericKey(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		key   string
	}{
		{"image14.JPG", true, "14"},
		{"image007.png", true, "7"},
		{"000.jpg", true, "0"},
		{"2024-05-img3.jpg", true, "2024053"},
		{"hero.jpg", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NumericKey(tt.name)
			assert.Equal(t, tt.valid, k.Valid())
			assert.Equal(t, tt.key, k.String())
		})
	}
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	require.Len(t, m.Images, 77)
	assert.Equal(t, "images/", m.Prefix)

	entries := Sort(m.Images)
	seen := make(map[string]bool)
	for i, e := range entries {
		assert.False(t, seen[e.Filename], "duplicate %s", e.Filename)
		seen[e.Filename] = true
		if i > 0 {
			assert.Equal(t, -1, entries[i-1].Key.Compare(e.Key), "%s before %s", entries[i-1].Filename, e.Filename)
		}
	}
	assert.Len(t, seen, 77)
	assert.Equal(t, "image1.jpg", entries[0].Filename)
	assert.Equal(t, "image14.JPG", entries[13].Filename)
	assert.Equal(t, "image77.jpg", entries[76].Filename)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("images:\n  - b2.jpg\n  - a1.jpg\n"), 0644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, m.Prefix)
	assert.Equal(t, []string{"b2.jpg", "a1.jpg"}, m.Images)

	m, err = LoadManifest("")
	require.NoError(t, err)
	assert.Len(t, m.Images, 77)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildThumbnails(t *testing.T) {
	_, _, r := newRenderer(t)

	entries := r.Build([]string{"image2.jpg", "image10.jpg", "image1.jpg"})
	assert.Equal(t, []string{"image1.jpg", "image2.jpg", "image10.jpg"}, Filenames(entries))

	thumbs := r.Thumbnails()
	require.Len(t, thumbs, 3)
	for i, img := range thumbs {
		assert.Equal(t, "images/"+entries[i].Filename, dom.Attr(img, "src"))
		assert.Equal(t, "lazy", dom.Attr(img, "loading"))
		assert.True(t, dom.HasClass(img.Parent, "gallery-item"))
	}
}

func TestBuildFullManifest(t *testing.T) {
	_, _, r := newRenderer(t)
	r.Build(DefaultImages)
	assert.Len(t, r.Thumbnails(), len(DefaultImages))
}

func TestBuildTwiceDuplicates(t *testing.T) {
	_, _, r := newRenderer(t)
	r.Build([]string{"image1.jpg"})
	r.Build([]string{"image1.jpg"})
	assert.Len(t, r.Thumbnails(), 2)
}

func TestThumbnailOpensLightbox(t *testing.T) {
	doc, lb, r := newRenderer(t)
	r.Build([]string{"image2.jpg", "image14.JPG"})

	assert.False(t, lb.Active())
	doc.Click(r.Thumbnails()[1])

	assert.True(t, lb.Active())
	assert.Equal(t, "images/image14.JPG", lb.Source())
	assert.True(t, dom.HasClass(r.Overlay(), "active"))
	assert.Equal(t, "images/image14.JPG", dom.Attr(r.Image(), "src"))
}

func TestCloseControl(t *testing.T) {
	doc, lb, r := newRenderer(t)
	r.Build([]string{"image1.jpg"})
	doc.Click(r.Thumbnails()[0])

	doc.Click(r.CloseControl())

	assert.False(t, lb.Active())
	assert.False(t, dom.HasClass(r.Overlay(), "active"))
	// The last source stays behind until the next open.
	assert.Equal(t, "images/image1.jpg", lb.Source())
}

func TestOverlayBackgroundCloses(t *testing.T) {
	doc, lb, r := newRenderer(t)
	r.Build([]string{"image1.jpg"})
	doc.Click(r.Thumbnails()[0])

	doc.Click(r.Image())
	assert.True(t, lb.Active(), "clicking the displayed image keeps the lightbox open")

	doc.Click(r.Overlay())
	assert.False(t, lb.Active())
}

func TestLightboxReopen(t *testing.T) {
	lb := NewLightbox()
	var states []State
	lb.Subscribe(func(s State) { states = append(states, s) })

	lb.Open("images/a1.jpg")
	lb.Close()
	lb.Open("images/a2.jpg")

	assert.Equal(t, []State{
		{Active: true, Source: "images/a1.jpg"},
		{Active: false, Source: "images/a1.jpg"},
		{Active: true, Source: "images/a2.jpg"},
	}, states)
}

func TestNewRendererMissingSurface(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<html><body><div class="gallery-grid"></div></body></html>`))
	require.NoError(t, err)

	_, err = NewRenderer(doc, NewLightbox(), DefaultPrefix, DefaultSurface)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}
