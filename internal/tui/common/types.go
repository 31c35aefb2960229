package common

import (
	"admindash/internal/navigator"
	"admindash/internal/query"
	"admindash/internal/tui/styles"
	"admindash/pkg/types"
)

// MenuAction is one entry of the file browser context menu
type MenuAction string

const (
	MenuOpen   MenuAction = "Open"
	MenuSelect MenuAction = "Toggle selection"
	MenuCopy   MenuAction = "Show path"
)

// MenuActions lists the context menu entries in display order
var MenuActions = []MenuAction{MenuOpen, MenuSelect, MenuCopy}

// ContextMenu is the open context menu. It is view state only and never
// touches the navigator.
type ContextMenu struct {
	X, Y         int
	TargetNodeID string
	Cursor       int
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Theme() styles.Theme
	Tabs() []string
	ActiveTab() string
	Title() string
	Mode() types.Mode
	Cursor() int

	// Record screens
	Columns() []string
	Rows() query.View
	Query() query.Query
	FilterKey() string

	// File browser
	Listing() navigator.Listing
	Breadcrumbs() []navigator.Crumb
	IsSelected(id string) bool
	SelectionCount() int
	Menu() *ContextMenu

	SearchView() string
	CommandBuffer() string
	StatusView() string
	HelpView() string
	ShowHelp() bool
	Size() (width, height int)
}
