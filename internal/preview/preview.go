// Package preview is a terminal rendition of the portfolio page. It drives
// the same panel navigator and lightbox as the built site from the keyboard:
// the work panel lists the gallery in display order, the statement and
// biography panels show their Markdown.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hxj7031gino/my-cv/internal/gallery"
	"github.com/hxj7031gino/my-cv/internal/model"
	"github.com/hxj7031gino/my-cv/internal/nav"
)

const (
	DefaultStyle = "dark"
	defaultWidth = 80
	chromeHeight = 4 // tabs, blank line, help
)

// Options configure a preview.
type Options struct {
	SiteTitle string
	Panels    map[string]*model.PanelContent
	Projects  []model.Project
	Images    []string
	Prefix    string
	// Style is a glamour style name or path.
	Style string
}

type imageItem struct {
	entry gallery.Entry
	src   string
}

func (i imageItem) Title() string { return i.entry.Filename }
func (i imageItem) Description() string {
	if !i.entry.Key.Valid() {
		return "no number · " + i.src
	}
	return "#" + i.entry.Key.String() + " · " + i.src
}
func (i imageItem) FilterValue() string { return i.entry.Filename }

// Model is the bubbletea model for the preview.
type Model struct {
	opts      Options
	navigator *nav.Navigator
	lightbox  *gallery.Lightbox

	list     list.Model
	viewport viewport.Model
	help     help.Model
	renderer *glamour.TermRenderer

	width, height int
}

// New builds a preview showing the work panel with a closed lightbox.
func New(opts Options) (*Model, error) {
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}

	entries := gallery.Sort(opts.Images)
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, imageItem{entry: e, src: gallery.Source(opts.Prefix, e.Filename)})
	}

	l := list.New(items, list.NewDefaultDelegate(), defaultWidth, 20)
	l.Title = "Gallery"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHighlight))

	m := &Model{
		opts:      opts,
		navigator: nav.New(),
		lightbox:  gallery.NewLightbox(),
		list:      l,
		viewport:  viewport.New(defaultWidth, 20),
		help:      help.New(),
		width:     defaultWidth,
	}
	if err := m.setRenderer(defaultWidth); err != nil {
		return nil, err
	}
	m.navigator.Subscribe(func(nav.Panel) { m.refresh() })
	return m, nil
}

// Navigator exposes the panel state.
func (m *Model) Navigator() *nav.Navigator { return m.navigator }

// Lightbox exposes the overlay state.
func (m *Model) Lightbox() *gallery.Lightbox { return m.lightbox }

func (m *Model) setRenderer(width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.opts.Style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	m.renderer = r
	return nil
}

// refresh loads the visible text panel into the viewport.
func (m *Model) refresh() {
	p := m.navigator.Current()
	if p == nav.Work {
		return
	}
	pc, ok := m.opts.Panels[p.String()]
	if !ok || len(strings.TrimSpace(string(pc.Markdown))) == 0 {
		m.viewport.SetContent(Styles.Empty.Render(fmt.Sprintf("No %s yet. Add content/%s.md.", strings.ToLower(p.Title()), p)))
		m.viewport.GotoTop()
		return
	}
	out, err := m.renderer.Render(string(pc.Markdown))
	if err != nil {
		out = string(pc.Markdown)
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		bodyHeight := max(msg.Height-chromeHeight, 1)
		m.list.SetSize(msg.Width, bodyHeight)
		m.viewport.Width = msg.Width
		m.viewport.Height = bodyHeight
		m.help.Width = msg.Width
		if err := m.setRenderer(msg.Width); err == nil {
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		// The open overlay covers the page; only its close control reacts.
		if m.lightbox.Active() {
			if key.Matches(msg, keys.Close) {
				m.lightbox.Close()
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Work):
			m.navigator.Show(nav.Work)
			return m, nil
		case key.Matches(msg, keys.Statement):
			m.navigator.Show(nav.Statement)
			return m, nil
		case key.Matches(msg, keys.Biography):
			m.navigator.Show(nav.Biography)
			return m, nil
		case key.Matches(msg, keys.Next):
			m.navigator.Show(m.navigator.Next())
			return m, nil
		case key.Matches(msg, keys.Open):
			if m.navigator.Visible(nav.Work) {
				if item, ok := m.list.SelectedItem().(imageItem); ok {
					m.lightbox.Open(item.src)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.navigator.Visible(nav.Work) {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(nav.Panels)+1)
	if m.opts.SiteTitle != "" {
		tabs = append(tabs, Styles.Title.Render(m.opts.SiteTitle))
	}
	for _, p := range nav.Panels {
		if m.navigator.Visible(p) {
			tabs = append(tabs, Styles.ActiveTab.Render(p.Title()))
		} else {
			tabs = append(tabs, Styles.Tab.Render(p.Title()))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch {
	case m.lightbox.Active():
		b.WriteString(m.lightboxView())
	case m.navigator.Visible(nav.Work):
		if n := len(m.opts.Projects); n > 0 {
			b.WriteString(Styles.Muted.Render(fmt.Sprintf("projects: %d", n)))
			b.WriteString("\n")
		}
		if len(m.list.Items()) == 0 {
			b.WriteString(Styles.Empty.Render("No gallery images."))
		} else {
			b.WriteString(m.list.View())
		}
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *Model) lightboxView() string {
	src := m.lightbox.Source()
	body := lipgloss.JoinVertical(lipgloss.Left,
		Styles.Title.Render("Image"),
		Styles.Normal.Render(src),
		"",
		Styles.Hint.Render("esc/x to close"),
	)
	return Styles.Lightbox.Render(body)
}

// Run starts the preview on the terminal and blocks until it quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
