package tui

import (
	"admindash/internal/config"
	"admindash/internal/dataset"
	"admindash/internal/errors"
	"admindash/internal/navigator"
	"admindash/internal/query"
	"admindash/internal/tui/common"
	"admindash/internal/tui/components"
	"admindash/internal/tui/messages"
	"admindash/internal/tui/styles"
	"admindash/internal/tui/views"
	"admindash/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

type Model struct {
	cfg   *config.Config
	theme styles.Theme
	keys  types.KeyMap

	// Data
	snapshot dataset.Snapshot
	screens  map[string]dataset.Screen
	tabs     []string
	active   int

	// Per screen query state
	queries   map[string]query.Query
	filterKey map[string]int
	views     map[string]query.View
	cursors   map[string]int

	// File browser
	nav       *navigator.Navigator
	listQuery query.Query
	listing   navigator.Listing
	menu      *common.ContextMenu

	// Input state
	mode          types.Mode
	search        textinput.Model
	commandBuffer string
	help          help.Model
	showHelp      bool
	statusBar     *components.StatusBar

	width  int
	height int
}

// New builds the dashboard over snap. Per screen sort settings come from cfg;
// a nil cfg uses the defaults.
func New(cfg *config.Config, snap dataset.Snapshot) (*Model, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if snap.Tree == nil {
		return nil, errors.NewInvalidInputError("snapshot has no file tree", nil)
	}

	theme := styles.FromConfig(cfg)
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 128

	m := &Model{
		cfg:       cfg,
		theme:     theme,
		keys:      types.DefaultKeyMap(),
		snapshot:  snap,
		screens:   make(map[string]dataset.Screen),
		queries:   make(map[string]query.Query),
		filterKey: make(map[string]int),
		views:     make(map[string]query.View),
		cursors:   make(map[string]int),
		nav:       navigator.New(snap.Tree),
		mode:      types.Normal,
		search:    search,
		help:      help.New(),
		statusBar: components.NewStatusBar(theme),
		width:     defaultWidth,
		height:    defaultHeight,
	}

	for _, s := range dataset.Screens() {
		m.screens[s.Name] = s
		m.tabs = append(m.tabs, s.Name)
		m.queries[s.Name] = cfg.Query(s.Name, s.Default)
	}
	m.tabs = append(m.tabs, dataset.ScreenFiles)
	m.listQuery = cfg.Query(dataset.ScreenFiles, query.Query{
		Filters:       map[string]string{navigator.FilterPattern: query.All},
		SortField:     navigator.SortName,
		SortDirection: query.Asc,
	})

	m.refresh()
	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.SeedChangedMsg:
		cmd := m.statusBar.SetLoading(true)
		m.statusBar.SetText("Reloading " + msg.Change.Screen + " data")
		return m, cmd

	case messages.ReloadMsg:
		m.statusBar.SetLoading(false)
		if msg.Err != nil {
			m.statusBar.SetError(msg.Err)
			return m, nil
		}
		m.applySnapshot(msg.Snapshot)
		m.statusBar.SetText("Data reloaded")
		return m, nil

	case messages.ErrorMsg:
		m.statusBar.SetError(msg.Err)
		return m, nil

	case messages.StatusMsg:
		m.statusBar.SetText(msg.Text)
		return m, nil

	case spinner.TickMsg:
		return m, m.statusBar.Update(msg)
	}
	return m, nil
}

// applySnapshot swaps in reloaded data. The navigator keeps its folder when
// it still exists.
func (m *Model) applySnapshot(snap dataset.Snapshot) {
	m.snapshot = snap
	if snap.Tree != nil {
		m.nav.SetTree(snap.Tree)
	}
	if m.menu != nil {
		m.closeMenu()
	}
	m.refresh()
}

// refresh reruns every screen query and the folder listing, then clamps the
// cursors to the new row counts.
func (m *Model) refresh() {
	for name, s := range m.screens {
		view, err := s.Run(m.snapshot, m.queries[name])
		if err != nil {
			m.statusBar.SetError(err)
			continue
		}
		m.views[name] = view
	}
	listing, err := m.nav.List(m.listQuery)
	if err != nil {
		m.statusBar.SetError(err)
	} else {
		m.listing = listing
	}

	for _, name := range m.tabs {
		m.cursors[name] = clamp(m.cursors[name], m.rowCount(name))
	}
}

func (m *Model) rowCount(tab string) int {
	if tab == dataset.ScreenFiles {
		return m.listing.Len()
	}
	return len(m.views[tab])
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// cursorNode is the listing entry under the cursor on the files tab
func (m *Model) cursorNode() (navigator.Node, bool) {
	nodes := m.listing.All()
	c := m.cursors[dataset.ScreenFiles]
	if c < 0 || c >= len(nodes) {
		return navigator.Node{}, false
	}
	return nodes[c], true
}

func (m *Model) onFiles() bool {
	return m.ActiveTab() == dataset.ScreenFiles
}

// currentQuery returns the query of the active tab
func (m *Model) currentQuery() query.Query {
	if m.onFiles() {
		return m.listQuery
	}
	return m.queries[m.ActiveTab()]
}

// setQuery validates q against the active tab's engine before storing it
func (m *Model) setQuery(q query.Query) error {
	if m.onFiles() {
		if err := navigator.ListingEngine.Validate(q); err != nil {
			return err
		}
		m.listQuery = q
	} else {
		name := m.ActiveTab()
		if err := m.screens[name].Engine.Validate(q); err != nil {
			return err
		}
		m.queries[name] = q
	}
	m.refresh()
	return nil
}

func (m *Model) engine() *query.Engine {
	if m.onFiles() {
		return navigator.ListingEngine
	}
	return m.screens[m.ActiveTab()].Engine
}

// Getters

func (m *Model) Theme() styles.Theme {
	return m.theme
}

func (m *Model) Tabs() []string {
	return m.tabs
}

func (m *Model) ActiveTab() string {
	return m.tabs[m.active]
}

func (m *Model) Title() string {
	if s, ok := m.screens[m.ActiveTab()]; ok {
		return s.Title
	}
	return "Files"
}

func (m *Model) Mode() types.Mode {
	return m.mode
}

func (m *Model) Cursor() int {
	return m.cursors[m.ActiveTab()]
}

func (m *Model) Columns() []string {
	return m.screens[m.ActiveTab()].Columns
}

func (m *Model) Rows() query.View {
	return m.views[m.ActiveTab()]
}

// ScreenView returns the current rows of any record screen
func (m *Model) ScreenView(name string) query.View {
	return m.views[name]
}

func (m *Model) Query() query.Query {
	return m.currentQuery()
}

// FilterKey is the filter that f cycles on the active tab
func (m *Model) FilterKey() string {
	keys := m.engine().FilterKeys()
	if len(keys) == 0 {
		return ""
	}
	return keys[m.filterKey[m.ActiveTab()]%len(keys)]
}

func (m *Model) Listing() navigator.Listing {
	return m.listing
}

func (m *Model) Breadcrumbs() []navigator.Crumb {
	return m.nav.Breadcrumbs()
}

func (m *Model) IsSelected(id string) bool {
	return m.nav.IsSelected(id)
}

func (m *Model) SelectionCount() int {
	return len(m.nav.Selection())
}

// Navigator exposes the navigation state machine
func (m *Model) Navigator() *navigator.Navigator {
	return m.nav
}

func (m *Model) Menu() *common.ContextMenu {
	return m.menu
}

func (m *Model) SearchView() string {
	return m.search.View()
}

func (m *Model) CommandBuffer() string {
	return m.commandBuffer
}

func (m *Model) StatusView() string {
	return m.statusBar.View()
}

// StatusText is the raw status line, without styling
func (m *Model) StatusText() string {
	return m.statusBar.Text()
}

func (m *Model) HelpView() string {
	m.help.ShowAll = m.showHelp
	return m.help.View(m.keys)
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) Size() (int, int) {
	return m.width, m.height
}
