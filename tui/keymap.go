package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Search  key.Binding
	Precise key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Search:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	Precise: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "use precise location")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}
