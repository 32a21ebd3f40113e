package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the viewer.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Escape  key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "shorter window")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "longer window")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
}
