package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	NextClip key.Binding
	Split    key.Binding
	Delete   key.Binding
	Merge    key.Binding
	Copy     key.Binding
	Paste    key.Binding
	Lock     key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "playhead back")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "playhead forward")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous track")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next track")),
		NextClip: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next clip")),
		Split:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Merge:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge next")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Paste:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste")),
		Lock:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle lock")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redo")),
		Save:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NextClip, k.Split, k.Undo, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.NextClip},
		{k.Split, k.Delete, k.Merge, k.Lock},
		{k.Copy, k.Paste, k.Undo, k.Redo},
		{k.Save, k.Help, k.Quit},
	}
}
