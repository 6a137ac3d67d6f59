package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	AddAfter  key.Binding
	AddEnd    key.Binding
	AddBefore key.Binding
	Drag      key.Binding
	Menu      key.Binding
	Rename    key.Binding
	Duplicate key.Binding
	Delete    key.Binding
	First     key.Binding
	Copy      key.Binding
	Goto      key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Shared by drag mode, the menu and prompts.
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		AddAfter:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddEnd:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add at end")),
		AddBefore: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add before")),
		Drag:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Menu:      key.NewBinding(key.WithKeys("enter", "."), key.WithHelp("enter", "menu")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Duplicate: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicate")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		First:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "set first")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Goto:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "go to")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:      key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.AddAfter, k.Menu, k.Drag, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Goto},
		{k.AddAfter, k.AddBefore, k.AddEnd},
		{k.Drag, k.First, k.Menu},
		{k.Rename, k.Duplicate, k.Delete, k.Copy},
		{k.Help, k.Quit},
	}
}

// dragHelp is shown while a tab is lifted.
type dragHelp struct{ k keyMap }

func (d dragHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "move drop target")),
		d.k.Confirm,
		d.k.Cancel,
	}
}

func (d dragHelp) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }
