package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	up       key.Binding
	down     key.Binding
	sel      key.Binding
	done     key.Binding
	schedule key.Binding
	pause    key.Binding
	finish   key.Binding
	cancel   key.Binding
	save     key.Binding
	quit     key.Binding
}

var defaultKeymap = keymap{
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	sel: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	done: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "done/undone"),
	),
	schedule: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start session"),
	),
	pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	finish: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete early"),
	),
	cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
