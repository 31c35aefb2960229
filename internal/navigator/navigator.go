package navigator

import (
	"path"
	"strings"

	"admindash/internal/errors"
	"admindash/internal/query"
)

// State is a snapshot of where the navigator is and what is selected
type State struct {
	CurrentPath string
	Selection   []string
}

// Crumb is one breadcrumb entry; jumping to Path returns to it
type Crumb struct {
	Name string
	Path string
}

// DefaultRootName labels the root breadcrumb when the root node has no name
const DefaultRootName = "Home"

// Navigator tracks the current folder and a selection scoped to it. Every
// transition either succeeds or returns a NavigationError and leaves the
// state untouched.
type Navigator struct {
	tree      *Tree
	current   string
	selection map[string]struct{}
}

// New starts a navigator at the root with nothing selected
func New(tree *Tree) *Navigator {
	return &Navigator{
		tree:      tree,
		current:   RootPath,
		selection: make(map[string]struct{}),
	}
}

// Tree returns the snapshot being navigated
func (n *Navigator) Tree() *Tree {
	return n.tree
}

// CurrentPath is the path of the current folder
func (n *Navigator) CurrentPath() string {
	return n.current
}

// Current returns the node of the current folder
func (n *Navigator) Current() Node {
	node, _ := n.tree.Lookup(n.current)
	return node
}

func (n *Navigator) moveTo(p string) {
	n.current = p
	n.selection = make(map[string]struct{})
}

func (n *Navigator) inCurrentLevel(id string) (Node, bool) {
	node, ok := n.tree.Node(id)
	if !ok || node.IsRoot() {
		return Node{}, false
	}
	return node, node.Parent() == n.Current().ID
}

// Descend enters the folder id, which must be a child of the current folder
func (n *Navigator) Descend(id string) error {
	node, ok := n.inCurrentLevel(id)
	if !ok {
		return errors.NewNavigationError("not in current level", id, errors.NotInCurrentLevel)
	}
	if !node.IsFolder() {
		return errors.NewNavigationError("not a folder", id, errors.NotAFolder)
	}
	n.moveTo(node.Path)
	return nil
}

// Ascend moves to the parent folder. At the root it reports AlreadyAtRoot and
// changes nothing.
func (n *Navigator) Ascend() error {
	if n.current == RootPath {
		return errors.NewNavigationError("already at root", RootPath, errors.AlreadyAtRoot)
	}
	n.moveTo(path.Dir(n.current))
	return nil
}

// JumpTo moves to p, which must resolve from the root through an unbroken
// chain of folders.
func (n *Navigator) JumpTo(p string) error {
	target := NormalizePath(p)
	node := n.tree.Root()
	if target != RootPath {
		segments := strings.Split(strings.TrimPrefix(target, "/"), "/")
		for i, seg := range segments {
			next, ok := n.child(node.ID, seg)
			if !ok {
				return errors.NewNavigationError("path not found", target, errors.PathNotFound)
			}
			if !next.IsFolder() {
				if i == len(segments)-1 {
					return errors.NewNavigationError("not a folder", target, errors.NotAFolder)
				}
				return errors.NewNavigationError("path not found", target, errors.PathNotFound)
			}
			node = next
		}
	}
	n.moveTo(node.Path)
	return nil
}

func (n *Navigator) child(parentID, name string) (Node, bool) {
	for _, c := range n.tree.Children(parentID) {
		if c.Name == name {
			return c, true
		}
	}
	return Node{}, false
}

// ToggleSelect adds id to the selection when included is true and removes it
// otherwise. The node must be a child of the current folder.
func (n *Navigator) ToggleSelect(id string, included bool) error {
	if _, ok := n.inCurrentLevel(id); !ok {
		return errors.NewNavigationError("not in current level", id, errors.NotInCurrentLevel)
	}
	if included {
		n.selection[id] = struct{}{}
	} else {
		delete(n.selection, id)
	}
	return nil
}

// SelectAll selects every child of the current folder
func (n *Navigator) SelectAll() {
	sel := make(map[string]struct{})
	for _, c := range n.tree.Children(n.Current().ID) {
		sel[c.ID] = struct{}{}
	}
	n.selection = sel
}

// ClearSelection empties the selection
func (n *Navigator) ClearSelection() {
	n.selection = make(map[string]struct{})
}

// IsSelected reports whether id is selected
func (n *Navigator) IsSelected(id string) bool {
	_, ok := n.selection[id]
	return ok
}

// Selection returns the selected ids in listing order
func (n *Navigator) Selection() []string {
	out := make([]string, 0, len(n.selection))
	for _, id := range n.Children().IDs() {
		if n.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}

// State returns a copy of the navigation state
func (n *Navigator) State() State {
	return State{CurrentPath: n.current, Selection: n.Selection()}
}

// Children lists the current folder by name, folders first
func (n *Navigator) Children() Listing {
	l, _ := n.tree.VisibleChildren(n.current)
	return l
}

// List orders and filters the current folder with the listing engine
func (n *Navigator) List(q query.Query) (Listing, error) {
	return n.Children().Order(q)
}

// Breadcrumbs returns the root followed by one crumb per path segment
func (n *Navigator) Breadcrumbs() []Crumb {
	root := n.tree.Root()
	name := root.Name
	if name == "" || name == RootPath {
		name = DefaultRootName
	}
	crumbs := []Crumb{{Name: name, Path: RootPath}}
	if n.current == RootPath {
		return crumbs
	}
	prefix := RootPath
	for _, seg := range strings.Split(strings.TrimPrefix(n.current, "/"), "/") {
		prefix = ChildPath(prefix, seg)
		crumbs = append(crumbs, Crumb{Name: seg, Path: prefix})
	}
	return crumbs
}

// SetTree swaps in a new snapshot. The current path survives if it still
// names a folder, with the selection pruned to surviving children; otherwise
// the navigator falls back to the deepest surviving ancestor folder and the
// selection is cleared.
func (n *Navigator) SetTree(tree *Tree) {
	n.tree = tree
	if node, ok := tree.Lookup(n.current); ok && node.IsFolder() {
		for id := range n.selection {
			if _, in := n.inCurrentLevel(id); !in {
				delete(n.selection, id)
			}
		}
		return
	}
	p := n.current
	for p != RootPath {
		p = path.Dir(p)
		if node, ok := tree.Lookup(p); ok && node.IsFolder() {
			break
		}
	}
	n.moveTo(p)
}
