package ui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	play     key.Binding
	prev     key.Binding
	next     key.Binding
	prevWeek key.Binding
	nextWeek key.Binding
	speed    key.Binding
	accept   key.Binding
	back     key.Binding
	help     key.Binding
	quit     key.Binding
}

var defaultKeyMap = keymap{
	play: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "Play/Pause"),
	),
	prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "Prev play"),
	),
	next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "Next play"),
	),
	prevWeek: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "Prev week"),
	),
	nextWeek: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "Next week"),
	),
	speed: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Set speed (ms)"),
	),
	accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Apply"),
	),
	back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Help"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
}
