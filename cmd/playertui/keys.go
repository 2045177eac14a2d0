package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down        key.Binding
	Open, Back      key.Binding
	PlayAll         key.Binding
	Enqueue         key.Binding
	Toggle          key.Binding
	Next, Prev      key.Binding
	SeekFwd, SeekBk key.Binding
	VolUp, VolDown  key.Binding
	Mute            key.Binding
	Shuffle         key.Binding
	Repeat          key.Binding
	Stop            key.Binding
	Follow          key.Binding
	Save            key.Binding
	Search          key.Binding
	Home, Library   key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/open")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		PlayAll: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play collection")),
		Enqueue: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to queue")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Prev:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous")),
		SeekFwd: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "+10s")),
		SeekBk:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "-10s")),
		VolUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		VolDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		Mute:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Shuffle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		Repeat:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Follow:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow")),
		Save:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "like/save")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Home:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Library: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "library")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Toggle, k.Next, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back, k.PlayAll, k.Enqueue},
		{k.Toggle, k.Next, k.Prev, k.SeekFwd, k.SeekBk, k.Stop},
		{k.VolUp, k.VolDown, k.Mute, k.Shuffle, k.Repeat},
		{k.Follow, k.Save, k.Search, k.Home, k.Library, k.Quit},
	}
}
