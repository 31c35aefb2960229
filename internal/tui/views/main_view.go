package views

import (
	"fmt"
	"sort"
	"strings"

	"admindash/internal/dataset"
	"admindash/internal/tui/common"
	"admindash/internal/tui/components"
	"admindash/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView draws the tab bar, the active screen and the footer
func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(RenderTabs(m))
	sb.WriteString("\n")
	sb.WriteString(m.Theme().Title.Render(m.Title()))
	sb.WriteString("\n")
	sb.WriteString(RenderQueryLine(m))
	sb.WriteString("\n")

	if m.ActiveTab() == dataset.ScreenFiles {
		sb.WriteString(RenderFiles(m))
	} else {
		sb.WriteString(RenderRecords(m))
	}

	sb.WriteString("\n")
	sb.WriteString(RenderFooter(m))

	return m.Theme().App.Render(sb.String())
}

func RenderTabs(m common.ModelReader) string {
	theme := m.Theme()
	tabs := make([]string, len(m.Tabs()))
	for i, name := range m.Tabs() {
		if name == m.ActiveTab() {
			tabs[i] = theme.ActiveTab.Render(name)
		} else {
			tabs[i] = theme.Tab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RenderQueryLine summarizes the search term, filters and sort of the active screen
func RenderQueryLine(m common.ModelReader) string {
	theme := m.Theme()
	q := m.Query()

	var parts []string
	if m.Mode() == types.Search {
		parts = append(parts, m.SearchView())
	} else if q.Term != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q.Term))
	}
	for _, key := range sortedKeys(q.Filters) {
		label := fmt.Sprintf("%s=%s", key, q.Filters[key])
		if key == m.FilterKey() {
			label = theme.Crumb.Render(label)
		}
		parts = append(parts, label)
	}
	if q.SortField != "" {
		parts = append(parts, fmt.Sprintf("sort: %s %s", q.SortField, q.SortDirection))
	}
	return theme.Help.Render(strings.Join(parts, "  "))
}

func RenderRecords(m common.ModelReader) string {
	rows := m.Rows()
	if len(rows) == 0 {
		return m.Theme().Help.Render("No records match.")
	}
	width, _ := m.Size()
	return components.RecordTable(m.Theme(), m.Columns(), rows, m.Cursor(), width)
}

func RenderFiles(m common.ModelReader) string {
	theme := m.Theme()
	var sb strings.Builder
	sb.WriteString(components.Breadcrumbs(theme, m.Breadcrumbs()))
	sb.WriteString("\n\n")

	width, height := m.Size()
	browser := components.NewFileBrowser(theme)
	browser.SetSize(width, height-10)
	sb.WriteString(browser.View(m.Listing(), m.Cursor(), m.IsSelected))

	if menu := m.Menu(); menu != nil {
		for _, n := range m.Listing().All() {
			if n.ID == menu.TargetNodeID {
				sb.WriteString("\n")
				sb.WriteString(components.ContextMenu(theme, menu, n))
				break
			}
		}
	}
	if count := m.SelectionCount(); count > 0 {
		sb.WriteString("\n")
		sb.WriteString(theme.Selected.Render(fmt.Sprintf("%d selected", count)))
	}
	return sb.String()
}

func RenderFooter(m common.ModelReader) string {
	var lines []string
	if m.Mode() == types.Command {
		lines = append(lines, m.CommandBuffer())
	}
	if status := m.StatusView(); status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, m.Theme().Help.Render(fmt.Sprintf("[%s] ", m.Mode())+m.HelpView()))
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
