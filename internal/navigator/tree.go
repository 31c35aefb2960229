// Package navigator holds the folder/file tree and the path and selection
// state machine used by the file browser.
package navigator

import (
	"path"
	"sort"
	"strings"
	"time"

	"admindash/internal/errors"
)

// NodeKind distinguishes folders from files
type NodeKind string

const (
	Folder NodeKind = "folder"
	File   NodeKind = "file"
)

// RootPath is the path of the tree root
const RootPath = "/"

// Node is one folder or file entry
type Node struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	ParentID  *string   `yaml:"parentId,omitempty"`
	Kind      NodeKind  `yaml:"kind"`
	Path      string    `yaml:"path,omitempty"`
	Size      int64     `yaml:"size,omitempty"`
	ItemCount int       `yaml:"itemCount,omitempty"`
	Modified  time.Time `yaml:"modified,omitempty"`
}

// IsFolder reports whether n can contain other nodes
func (n Node) IsFolder() bool {
	return n.Kind == Folder
}

// IsRoot reports whether n has no parent
func (n Node) IsRoot() bool {
	return n.ParentID == nil
}

// Parent returns the parent id, or "" for the root
func (n Node) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// Ref returns a parent reference to id, for building nodes in code
func Ref(id string) *string {
	return &id
}

// NormalizePath cleans p into the tree's path form: absolute, single
// separators, no trailing slash.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return RootPath
	}
	return path.Clean("/" + p)
}

// ChildPath is the path of a child called name under parent
func ChildPath(parent, name string) string {
	if parent == RootPath {
		return RootPath + name
	}
	return parent + "/" + name
}

// Tree is a validated, read-only snapshot of nodes
type Tree struct {
	nodes    map[string]Node
	byPath   map[string]string
	children map[string][]string
	root     string
}

// NewTree validates nodes and indexes them. It fails with InvalidTree unless
// there is exactly one root folder at "/", every parent exists and is a
// folder, every path equals its parent's path plus its name, and sibling
// names are unique. Names must be a single path segment other than "." or
// "..", without leading or trailing whitespace.
func NewTree(nodes []Node) (*Tree, error) {
	t := &Tree{
		nodes:    make(map[string]Node, len(nodes)),
		byPath:   make(map[string]string, len(nodes)),
		children: make(map[string][]string),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, errors.NewNavigationError("node without id", n.Name, errors.InvalidTree)
		}
		if _, dup := t.nodes[n.ID]; dup {
			return nil, errors.NewNavigationError("duplicate node id", n.ID, errors.InvalidTree)
		}
		if n.Kind != Folder && n.Kind != File {
			return nil, errors.NewNavigationError("unknown node kind "+string(n.Kind), n.ID, errors.InvalidTree)
		}
		if n.IsRoot() {
			if t.root != "" {
				return nil, errors.NewNavigationError("more than one root", n.ID, errors.InvalidTree)
			}
			t.root = n.ID
		}
		t.nodes[n.ID] = n
	}
	if t.root == "" {
		return nil, errors.NewNavigationError("no root node", RootPath, errors.InvalidTree)
	}
	root := t.nodes[t.root]
	if !root.IsFolder() || root.Path != RootPath {
		return nil, errors.NewNavigationError("root must be a folder at /", root.ID, errors.InvalidTree)
	}

	siblings := make(map[string]map[string]bool)
	for _, n := range nodes {
		if n.IsRoot() {
			continue
		}
		if !validName(n.Name) {
			return nil, errors.NewNavigationError("invalid node name", n.ID, errors.InvalidTree)
		}
		parent, ok := t.nodes[n.Parent()]
		if !ok {
			return nil, errors.NewNavigationError("parent does not exist", n.ID, errors.InvalidTree)
		}
		if !parent.IsFolder() {
			return nil, errors.NewNavigationError("parent is not a folder", n.ID, errors.InvalidTree)
		}
		if n.Path != ChildPath(parent.Path, n.Name) {
			return nil, errors.NewNavigationError("path does not match parent chain", n.ID, errors.InvalidTree)
		}
		names := siblings[parent.ID]
		if names == nil {
			names = make(map[string]bool)
			siblings[parent.ID] = names
		}
		if names[n.Name] {
			return nil, errors.NewNavigationError("duplicate sibling name", n.Path, errors.InvalidTree)
		}
		names[n.Name] = true
		t.children[parent.ID] = append(t.children[parent.ID], n.ID)
	}

	for _, n := range t.nodes {
		t.byPath[n.Path] = n.ID
	}
	for id, kids := range t.children {
		sort.Slice(kids, func(i, j int) bool {
			a, b := t.nodes[kids[i]], t.nodes[kids[j]]
			if fa, fb := strings.ToLower(a.Name), strings.ToLower(b.Name); fa != fb {
				return fa < fb
			}
			return a.ID < b.ID
		})
		t.children[id] = kids
	}
	return t, nil
}

// validName reports whether name survives NormalizePath as a single path
// segment, so the node's path resolves back to it.
func validName(name string) bool {
	switch {
	case name == "", name == ".", name == "..":
		return false
	case strings.Contains(name, "/"):
		return false
	case strings.TrimSpace(name) != name:
		return false
	}
	return true
}

// DerivePaths returns copies of nodes with every path recomputed from the
// parent chain. Loaders call it before NewTree, and so does anything that
// renames or moves nodes.
func DerivePaths(nodes []Node) ([]Node, error) {
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		byID[n.ID] = i
	}

	out := make([]Node, len(nodes))
	copy(out, nodes)
	resolved := make(map[string]bool, len(nodes))

	var resolve func(i int, depth int) (string, error)
	resolve = func(i int, depth int) (string, error) {
		n := &out[i]
		if resolved[n.ID] {
			return n.Path, nil
		}
		if depth > len(nodes) {
			return "", errors.NewNavigationError("cycle in parent chain", n.ID, errors.InvalidTree)
		}
		if n.IsRoot() {
			n.Path = RootPath
			resolved[n.ID] = true
			return n.Path, nil
		}
		pi, ok := byID[n.Parent()]
		if !ok {
			return "", errors.NewNavigationError("parent does not exist", n.ID, errors.InvalidTree)
		}
		parentPath, err := resolve(pi, depth+1)
		if err != nil {
			return "", err
		}
		n.Path = ChildPath(parentPath, n.Name)
		resolved[n.ID] = true
		return n.Path, nil
	}

	for i := range out {
		if _, err := resolve(i, 0); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Root returns the root node
func (t *Tree) Root() Node {
	return t.nodes[t.root]
}

// Node looks up a node by id
func (t *Tree) Node(id string) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Lookup finds the node at a path
func (t *Tree) Lookup(p string) (Node, bool) {
	id, ok := t.byPath[NormalizePath(p)]
	if !ok {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Len is the number of nodes including the root
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns the direct children of id ordered by name
func (t *Tree) Children(id string) []Node {
	ids := t.children[id]
	out := make([]Node, len(ids))
	for i, cid := range ids {
		out[i] = t.nodes[cid]
	}
	return out
}

// Nodes returns every node in depth-first order, siblings by name
func (t *Tree) Nodes() []Node {
	out := make([]Node, 0, len(t.nodes))
	t.Walk(func(n Node, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Walk visits nodes depth-first from the root. Returning false from fn skips
// the node's subtree.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		if !fn(t.nodes[id], depth) {
			return
		}
		for _, cid := range t.children[id] {
			visit(cid, depth+1)
		}
	}
	visit(t.root, 0)
}

// VisibleChildren lists the children of the folder at p, split into folders
// and files.
func (t *Tree) VisibleChildren(p string) (Listing, error) {
	n, ok := t.Lookup(p)
	if !ok {
		return Listing{}, errors.NewNavigationError("path not found", NormalizePath(p), errors.PathNotFound)
	}
	if !n.IsFolder() {
		return Listing{}, errors.NewNavigationError("not a folder", n.Path, errors.NotAFolder)
	}
	var l Listing
	for _, c := range t.Children(n.ID) {
		if c.IsFolder() {
			l.Folders = append(l.Folders, c)
		} else {
			l.Files = append(l.Files, c)
		}
	}
	return l, nil
}
