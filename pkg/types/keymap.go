package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the dashboard.
// It lives in pkg/types so the model and the help view share one definition.
type KeyMap struct {
	// General
	Help    key.Binding
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Command key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Query
	Search      key.Binding
	CycleFilter key.Binding
	FilterKey   key.Binding
	CycleSort   key.Binding
	Reverse     key.Binding

	// File browser
	Open        key.Binding // Descend into the folder under the cursor
	Back        key.Binding // Ascend to the parent folder
	Select      key.Binding
	SelectAll   key.Binding
	Clear       key.Binding
	ContextMenu key.Binding
	Crumb       key.Binding // 1-9 jump to a breadcrumb
}

// DefaultKeyMap returns the stock bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
		Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		CycleFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		FilterKey:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "next filter key")),
		CycleSort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Reverse:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),

		Open:        key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("backspace", "h"), key.WithHelp("backspace", "up a level")),
		Select:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		ContextMenu: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Crumb: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "breadcrumb"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Search, k.CycleFilter, k.CycleSort, k.Reverse, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.NextTab, k.PrevTab, k.Command, k.Help, k.Quit},
		{k.Search, k.CycleFilter, k.FilterKey, k.CycleSort, k.Reverse},
		{k.Open, k.Back, k.Select, k.SelectAll, k.Clear, k.ContextMenu, k.Crumb},
	}
}
