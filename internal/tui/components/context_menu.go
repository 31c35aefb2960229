package components

import (
	"strings"

	"admindash/internal/navigator"
	"admindash/internal/tui/common"
	"admindash/internal/tui/styles"
)

// ContextMenu renders the open menu for target. Entries that cannot apply to
// the target, such as opening a file, are dimmed.
func ContextMenu(theme styles.Theme, menu *common.ContextMenu, target navigator.Node) string {
	var sb strings.Builder
	sb.WriteString(theme.Header.Render(target.Name))
	for i, action := range common.MenuActions {
		sb.WriteString("\n")
		label := string(action)
		switch {
		case i == menu.Cursor:
			label = theme.Cursor.Render(label)
		case action == common.MenuOpen && !target.IsFolder():
			label = theme.Help.Render(label)
		default:
			label = theme.Cell.Render(label)
		}
		sb.WriteString(label)
	}
	return theme.Menu.MarginLeft(menu.X).Render(sb.String())
}
