package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the keypad bindings. Digit, * and # keys are read directly
// from the message runes.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Call    key.Binding
	Delete  key.Binding
	Compact key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "select")),
		Down:    key.NewBinding(key.WithKeys("down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/call")),
		Call:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "call")),
		Delete:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
		Compact: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "keypad")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Open, k.Call, k.Delete, k.Compact, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
