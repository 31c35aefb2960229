package navigator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admindash/internal/errors"
	"admindash/internal/query"
)

func sampleNodes() []Node {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC) }
	return []Node{
		{ID: "0", Name: "", Kind: Folder},
		{ID: "1", Name: "Documents", ParentID: Ref("0"), Kind: Folder, ItemCount: 1, Modified: day(10)},
		{ID: "2", Name: "Pictures", ParentID: Ref("0"), Kind: Folder, ItemCount: 1, Modified: day(12)},
		{ID: "3", Name: "Vacation", ParentID: Ref("2"), Kind: Folder, ItemCount: 1, Modified: day(5)},
		{ID: "4", Name: "report.pdf", ParentID: Ref("1"), Kind: File, Size: 2048, Modified: day(11)},
		{ID: "5", Name: "notes.txt", ParentID: Ref("0"), Kind: File, Size: 120, Modified: day(3)},
		{ID: "6", Name: "beach.jpg", ParentID: Ref("3"), Kind: File, Size: 5 << 20, Modified: day(6)},
		{ID: "7", Name: "archive.zip", ParentID: Ref("0"), Kind: File, Size: 9000, Modified: day(20)},
	}
}

func sampleTree(t *testing.T) *Tree {
	t.Helper()
	nodes, err := DerivePaths(sampleNodes())
	require.NoError(t, err)
	tree, err := NewTree(nodes)
	require.NoError(t, err)
	return tree
}

func TestDescendAscendRoundTrip(t *testing.T) {
	nav := New(sampleTree(t))
	assert.Equal(t, State{CurrentPath: "/", Selection: []string{}}, nav.State())

	require.NoError(t, nav.Descend("1"))
	assert.Equal(t, "/Documents", nav.CurrentPath())
	assert.Empty(t, nav.Selection())

	require.NoError(t, nav.Ascend())
	assert.Equal(t, "/", nav.CurrentPath())
	assert.Empty(t, nav.Selection())
}

func TestRoundTripClearsSelection(t *testing.T) {
	nav := New(sampleTree(t))
	require.NoError(t, nav.Descend("2"))
	require.NoError(t, nav.ToggleSelect("3", true))
	require.NoError(t, nav.Descend("3"))
	assert.Empty(t, nav.Selection())

	require.NoError(t, nav.ToggleSelect("6", true))
	require.NoError(t, nav.Ascend())
	assert.Equal(t, "/Pictures", nav.CurrentPath())
	assert.Empty(t, nav.Selection())
}

func TestDescendErrors(t *testing.T) {
	nav := New(sampleTree(t))

	err := nav.Descend("5")
	assert.True(t, errors.IsNotAFolder(err))

	err = nav.Descend("3")
	assert.True(t, errors.IsNotInCurrentLevel(err))

	err = nav.Descend("404")
	assert.True(t, errors.IsNotInCurrentLevel(err))

	err = nav.Descend("0")
	assert.True(t, errors.IsNotInCurrentLevel(err))

	assert.Equal(t, "/", nav.CurrentPath())
}

func TestAscendAtRoot(t *testing.T) {
	nav := New(sampleTree(t))
	require.NoError(t, nav.ToggleSelect("5", true))

	err := nav.Ascend()
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyAtRoot(err))
	assert.Equal(t, "/", nav.CurrentPath())
	assert.Equal(t, []string{"5"}, nav.Selection())
}

func TestJumpTo(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		errKind errors.ErrorKind
	}{
		{"root", "/", "/", errors.Unknown},
		{"empty is root", "", "/", errors.Unknown},
		{"nested", "/Pictures/Vacation", "/Pictures/Vacation", errors.Unknown},
		{"normalized", "//Pictures/Vacation/", "/Pictures/Vacation", errors.Unknown},
		{"relative", "Documents", "/Documents", errors.Unknown},
		{"missing leaf", "/Pictures/Work", "", errors.PathNotFound},
		{"broken link", "/Archive/Vacation", "", errors.PathNotFound},
		{"through a file", "/notes.txt/x", "", errors.PathNotFound},
		{"file leaf", "/Documents/report.pdf", "", errors.NotAFolder},
		{"case sensitive", "/documents", "", errors.PathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := New(sampleTree(t))
			require.NoError(t, nav.Descend("1"))
			require.NoError(t, nav.ToggleSelect("4", true))

			err := nav.JumpTo(tt.path)
			if tt.errKind == errors.Unknown {
				require.NoError(t, err)
				assert.Equal(t, tt.want, nav.CurrentPath())
				assert.Empty(t, nav.Selection())
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, tt.errKind), "got %v", err)
			assert.Equal(t, "/Documents", nav.CurrentPath())
			assert.Equal(t, []string{"4"}, nav.Selection())
		})
	}
}

func TestJumpToSucceedsIffEveryPrefixIsAFolder(t *testing.T) {
	tree := sampleTree(t)
	candidates := []string{"/", "/Documents", "/Pictures", "/Pictures/Vacation", "/Pictures/Vacation/beach.jpg",
		"/Documents/report.pdf", "/Music", "/Pictures/Music", "/notes.txt"}

	for _, p := range candidates {
		want := true
		prefix := RootPath
		for _, seg := range splitPath(p) {
			prefix = ChildPath(prefix, seg)
			node, ok := tree.Lookup(prefix)
			if !ok || !node.IsFolder() {
				want = false
				break
			}
		}
		nav := New(tree)
		err := nav.JumpTo(p)
		assert.Equal(t, want, err == nil, "jump to %s: %v", p, err)
	}
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func TestToggleSelect(t *testing.T) {
	nav := New(sampleTree(t))
	require.NoError(t, nav.ToggleSelect("5", true))
	require.NoError(t, nav.ToggleSelect("1", true))
	require.NoError(t, nav.ToggleSelect("1", true))
	assert.Equal(t, []string{"1", "5"}, nav.Selection())
	assert.True(t, nav.IsSelected("5"))

	require.NoError(t, nav.ToggleSelect("5", false))
	assert.Equal(t, []string{"1"}, nav.Selection())

	err := nav.ToggleSelect("99", true)
	assert.True(t, errors.IsNotInCurrentLevel(err))
	assert.Equal(t, []string{"1"}, nav.Selection())

	// Grandchildren are not in the current level either.
	err = nav.ToggleSelect("4", true)
	assert.True(t, errors.IsNotInCurrentLevel(err))
	assert.Equal(t, "/", nav.CurrentPath())
}

func TestSelectAllAndClear(t *testing.T) {
	nav := New(sampleTree(t))
	nav.SelectAll()
	// Folders by name, then files by name.
	assert.Equal(t, []string{"1", "2", "7", "5"}, nav.Selection())

	nav.ClearSelection()
	assert.Empty(t, nav.Selection())

	require.NoError(t, nav.Descend("2"))
	nav.SelectAll()
	assert.Equal(t, []string{"3"}, nav.Selection())
}

func TestBreadcrumbs(t *testing.T) {
	nav := New(sampleTree(t))
	assert.Equal(t, []Crumb{{Name: "Home", Path: "/"}}, nav.Breadcrumbs())

	require.NoError(t, nav.JumpTo("/Pictures/Vacation"))
	crumbs := nav.Breadcrumbs()
	assert.Equal(t, []Crumb{
		{Name: "Home", Path: "/"},
		{Name: "Pictures", Path: "/Pictures"},
		{Name: "Vacation", Path: "/Pictures/Vacation"},
	}, crumbs)

	// Every crumb is a valid jump target.
	for _, c := range crumbs {
		assert.NoError(t, New(nav.Tree()).JumpTo(c.Path))
	}
}

func TestChildrenAndListingOrder(t *testing.T) {
	nav := New(sampleTree(t))
	listing := nav.Children()
	assert.Equal(t, []string{"1", "2"}, nodeIDs(listing.Folders))
	assert.Equal(t, []string{"7", "5"}, nodeIDs(listing.Files))
	assert.Equal(t, 4, listing.Len())

	bySize, err := nav.List(query.Query{SortField: SortSize, SortDirection: query.Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "5"}, nodeIDs(bySize.Files))

	byDate, err := nav.List(query.Query{SortField: SortModified, SortDirection: query.Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "7", "5"}, byDate.IDs())

	pattern, err := nav.List(query.Query{SortField: SortName}.WithFilter(FilterPattern, "*.txt"))
	require.NoError(t, err)
	assert.Empty(t, pattern.Folders)
	assert.Equal(t, []string{"5"}, nodeIDs(pattern.Files))

	_, err = nav.List(query.Query{SortField: "colour"})
	assert.True(t, errors.IsInvalidSortField(err))
}

func nodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestSetTreeKeepsPathAndPrunesSelection(t *testing.T) {
	nav := New(sampleTree(t))
	require.NoError(t, nav.ToggleSelect("5", true))
	require.NoError(t, nav.ToggleSelect("7", true))

	var kept []Node
	for _, n := range sampleNodes() {
		if n.ID != "7" {
			kept = append(kept, n)
		}
	}
	nodes, err := DerivePaths(kept)
	require.NoError(t, err)
	tree, err := NewTree(nodes)
	require.NoError(t, err)

	nav.SetTree(tree)
	assert.Equal(t, "/", nav.CurrentPath())
	assert.Equal(t, []string{"5"}, nav.Selection())
}

func TestSetTreeFallsBackToAncestor(t *testing.T) {
	nav := New(sampleTree(t))
	require.NoError(t, nav.JumpTo("/Pictures/Vacation"))
	require.NoError(t, nav.ToggleSelect("6", true))

	var kept []Node
	for _, n := range sampleNodes() {
		if n.ID != "3" && n.ID != "6" {
			kept = append(kept, n)
		}
	}
	nodes, err := DerivePaths(kept)
	require.NoError(t, err)
	tree, err := NewTree(nodes)
	require.NoError(t, err)

	nav.SetTree(tree)
	assert.Equal(t, "/Pictures", nav.CurrentPath())
	assert.Empty(t, nav.Selection())
}
