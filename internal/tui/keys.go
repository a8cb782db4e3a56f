package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
	reload     key.Binding
	sync       key.Binding
	localWins  key.Binding
	serverWins key.Binding
	merge      key.Binding
	manual     key.Binding
	copy       key.Binding
	submit     key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	reload:     key.NewBinding(key.WithKeys("r")),
	sync:       key.NewBinding(key.WithKeys("s")),
	localWins:  key.NewBinding(key.WithKeys("l")),
	serverWins: key.NewBinding(key.WithKeys("s")),
	merge:      key.NewBinding(key.WithKeys("m")),
	manual:     key.NewBinding(key.WithKeys("e")),
	copy:       key.NewBinding(key.WithKeys("c")),
	submit:     key.NewBinding(key.WithKeys("ctrl+s")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
}
