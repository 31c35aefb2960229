package tui

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"admindash/internal/dataset"
	"admindash/internal/navigator"
	"admindash/internal/query"
	"admindash/internal/tui/common"
	"admindash/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows above the listing: tabs, title, query line and breadcrumbs
const listingTop = 5

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case types.Search:
		return m.handleSearchKeys(msg)
	case types.Command:
		return m.handleCommandMode(msg)
	case types.Menu:
		return m.handleMenuKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.onFiles() {
		if handled := m.handleFileKeys(msg); handled {
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(m.active + 1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(m.active - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Top):
		m.cursors[m.ActiveTab()] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursors[m.ActiveTab()] = clamp(m.rowCount(m.ActiveTab())-1, m.rowCount(m.ActiveTab()))
	case key.Matches(msg, m.keys.Search):
		m.mode = types.Search
		m.search.SetValue(m.currentQuery().Term)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.CycleFilter):
		m.report(m.cycleFilter())
	case key.Matches(msg, m.keys.FilterKey):
		m.filterKey[m.ActiveTab()]++
		m.statusBar.SetText("f now cycles " + m.FilterKey())
	case key.Matches(msg, m.keys.CycleSort):
		m.report(m.cycleSort())
	case key.Matches(msg, m.keys.Reverse):
		q := m.currentQuery()
		m.report(m.setQuery(q.WithSort(q.SortField, q.SortDirection.Reverse())))
	case key.Matches(msg, m.keys.Clear):
		m.report(m.setQuery(m.currentQuery().WithTerm("")))
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Command):
		m.mode = types.Command
		m.commandBuffer = ":"
	}
	return m, nil
}

// handleFileKeys handles the file browser bindings. It reports whether msg
// was consumed.
func (m *Model) handleFileKeys(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.cursorNode(); ok {
			m.navigate(func() error { return m.nav.Descend(n.ID) })
		}
	case key.Matches(msg, m.keys.Back):
		m.navigate(m.nav.Ascend)
	case key.Matches(msg, m.keys.Select):
		if n, ok := m.cursorNode(); ok {
			m.report(m.nav.ToggleSelect(n.ID, !m.nav.IsSelected(n.ID)))
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.nav.SelectAll()
	case key.Matches(msg, m.keys.Clear):
		m.nav.ClearSelection()
		m.report(m.setQuery(m.listQuery.WithTerm("")))
	case key.Matches(msg, m.keys.ContextMenu):
		m.openMenu()
	case key.Matches(msg, m.keys.Crumb):
		m.jumpToCrumb(int(msg.Runes[0] - '0'))
	default:
		return false
	}
	return true
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = types.Normal
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = types.Normal
		m.search.Blur()
		m.search.SetValue("")
		m.report(m.setQuery(m.currentQuery().WithTerm("")))
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.report(m.setQuery(m.currentQuery().WithTerm(m.search.Value())))
	return m, cmd
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.menu.Cursor = (m.menu.Cursor + 1) % len(common.MenuActions)
	case key.Matches(msg, m.keys.Up):
		m.menu.Cursor = (m.menu.Cursor + len(common.MenuActions) - 1) % len(common.MenuActions)
	case msg.Type == tea.KeyEnter:
		m.runMenuAction(common.MenuActions[m.menu.Cursor])
	case key.Matches(msg, m.keys.Clear), key.Matches(msg, m.keys.ContextMenu):
		m.closeMenu()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = types.Normal
		m.commandBuffer = ""
		return m, nil
	case tea.KeyEnter:
		cmd := strings.TrimPrefix(m.commandBuffer, ":")
		m.mode = types.Normal
		m.commandBuffer = ""
		return m, m.executeCommand(cmd)
	case tea.KeyBackspace:
		if len(m.commandBuffer) > 1 {
			m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
		}
	case tea.KeySpace:
		m.commandBuffer += " "
	case tea.KeyRunes:
		m.commandBuffer += string(msg.Runes)
	}
	return m, nil
}

// executeCommand runs a : command. Failures go to the status bar.
func (m *Model) executeCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]

	switch fields[0] {
	case "q", "quit":
		return tea.Quit
	case "screen":
		if len(args) != 1 {
			m.statusBar.SetText("usage: screen <name>")
			return nil
		}
		for i, name := range m.tabs {
			if name == args[0] {
				m.switchTab(i)
				return nil
			}
		}
		m.statusBar.SetText(fmt.Sprintf("unknown screen %q", args[0]))
	case "jump", "cd":
		if len(args) != 1 {
			m.statusBar.SetText("usage: jump <path>")
			return nil
		}
		m.switchTab(len(m.tabs) - 1)
		m.navigate(func() error { return m.nav.JumpTo(args[0]) })
	case "sort":
		if len(args) == 0 || len(args) > 2 {
			m.statusBar.SetText("usage: sort <field> [asc|desc]")
			return nil
		}
		dir := m.currentQuery().SortDirection
		if len(args) == 2 {
			d, err := query.ParseDirection(args[1])
			if err != nil {
				m.statusBar.SetError(err)
				return nil
			}
			dir = d
		}
		m.report(m.setQuery(m.currentQuery().WithSort(args[0], dir)))
	case "filter":
		if len(args) != 1 || !strings.Contains(args[0], "=") {
			m.statusBar.SetText("usage: filter <key>=<value>")
			return nil
		}
		k, v, _ := strings.Cut(args[0], "=")
		m.report(m.setQuery(m.currentQuery().WithFilter(k, v)))
	case "pattern":
		if len(args) != 1 {
			m.statusBar.SetText("usage: pattern <glob>")
			return nil
		}
		m.switchTab(len(m.tabs) - 1)
		m.report(m.setQuery(m.listQuery.WithFilter(navigator.FilterPattern, args[0])))
	default:
		m.statusBar.SetText(fmt.Sprintf("unknown command %q", fields[0]))
	}
	return nil
}

func (m *Model) switchTab(i int) {
	n := len(m.tabs)
	m.active = ((i % n) + n) % n
	m.filterKey[m.ActiveTab()] %= max(1, len(m.engine().FilterKeys()))
}

func (m *Model) moveCursor(delta int) {
	tab := m.ActiveTab()
	m.cursors[tab] = clamp(m.cursors[tab]+delta, m.rowCount(tab))
}

// report shows err in the status bar when it is non-nil
func (m *Model) report(err error) {
	if err != nil {
		m.statusBar.SetError(err)
	}
}

// navigate runs a navigator transition and resets the listing on success.
// A failed transition leaves the navigator where it was.
func (m *Model) navigate(move func() error) {
	if err := move(); err != nil {
		m.statusBar.SetError(err)
		return
	}
	m.cursors[dataset.ScreenFiles] = 0
	m.statusBar.SetText(m.nav.CurrentPath())
	m.refresh()
}

func (m *Model) jumpToCrumb(n int) {
	crumbs := m.nav.Breadcrumbs()
	if n < 1 || n > len(crumbs) {
		return
	}
	m.navigate(func() error { return m.nav.JumpTo(crumbs[n-1].Path) })
}

func (m *Model) openMenu() {
	n, ok := m.cursorNode()
	if !ok {
		return
	}
	m.menu = &common.ContextMenu{
		X:            2,
		Y:            listingTop + m.cursors[dataset.ScreenFiles],
		TargetNodeID: n.ID,
	}
	m.mode = types.Menu
}

func (m *Model) closeMenu() {
	m.menu = nil
	m.mode = types.Normal
}

func (m *Model) runMenuAction(action common.MenuAction) {
	target, ok := m.nav.Tree().Node(m.menu.TargetNodeID)
	m.closeMenu()
	if !ok {
		return
	}
	switch action {
	case common.MenuOpen:
		m.navigate(func() error { return m.nav.Descend(target.ID) })
	case common.MenuSelect:
		m.report(m.nav.ToggleSelect(target.ID, !m.nav.IsSelected(target.ID)))
	case common.MenuCopy:
		m.statusBar.SetText(target.Path)
	}
}

// cycleFilter advances the active filter to its next value. Record screens
// cycle through the engine's facets; the file browser cycles name patterns
// built from the extensions in the current folder.
func (m *Model) cycleFilter() error {
	filterKey := m.FilterKey()
	if filterKey == "" {
		return nil
	}

	var values []string
	if m.onFiles() {
		values = m.extensionPatterns()
	} else {
		var err error
		values, err = m.engine().Facets(m.snapshot.Records[m.ActiveTab()], filterKey)
		if err != nil {
			return err
		}
	}

	q := m.currentQuery()
	current := q.Filters[filterKey]
	if !query.Active(current) {
		current = query.All
	}
	next := values[0]
	for i, v := range values {
		if v == current {
			next = values[(i+1)%len(values)]
			break
		}
	}
	m.cursors[m.ActiveTab()] = 0
	return m.setQuery(q.WithFilter(filterKey, next))
}

func (m *Model) extensionPatterns() []string {
	seen := make(map[string]bool)
	var patterns []string
	for _, n := range m.nav.Children().Files {
		ext := strings.ToLower(path.Ext(n.Name))
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		patterns = append(patterns, "*"+ext)
	}
	sort.Strings(patterns)
	return append([]string{query.All}, patterns...)
}

// cycleSort moves the sort to the next declared field, keeping the direction
func (m *Model) cycleSort() error {
	fields := m.engine().Fields()
	q := m.currentQuery()
	next := fields[0].Name
	for i, f := range fields {
		if f.Name == q.SortField {
			next = fields[(i+1)%len(fields)].Name
			break
		}
	}
	return m.setQuery(q.WithSort(next, q.SortDirection))
}
