package preview

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Work      key.Binding
	Statement key.Binding
	Biography key.Binding
	Next      key.Binding
	Open      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Work: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "work"),
	),
	Statement: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "statement"),
	),
	Biography: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "biography"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next panel"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open image"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "x"),
		key.WithHelp("esc/x", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Work, k.Statement, k.Biography, k.Open, k.Close, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Work, k.Statement, k.Biography, k.Next},
		{k.Open, k.Close, k.Quit},
	}
}
