package components

import (
	"strings"

	"admindash/internal/navigator"
	"admindash/internal/tui/styles"
)

// FileTree renders a whole node tree as an indented outline
type FileTree struct {
	Tree *navigator.Tree
	// Highlighted path, usually the navigator's current folder
	Current string
	// Depth limit, 0 = unlimited
	MaxDepth int
}

// NewFileTree creates a tree view rooted at the tree's root
func NewFileTree(tree *navigator.Tree) *FileTree {
	return &FileTree{Tree: tree, Current: navigator.RootPath}
}

// Lines returns one plain line per visible node, without styling
func (f *FileTree) Lines() []string {
	var lines []string
	f.walk(func(n navigator.Node, depth int) {
		lines = append(lines, f.line(n, depth))
	})
	return lines
}

// View renders the outline with folders, files and the current folder styled
func (f *FileTree) View(theme styles.Theme) string {
	var sb strings.Builder
	f.walk(func(n navigator.Node, depth int) {
		line := f.line(n, depth)
		switch {
		case n.Path == f.Current:
			line = theme.Cursor.Render(line)
		case n.IsFolder():
			line = theme.Folder.Render(line)
		default:
			line = theme.File.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	})
	return strings.TrimSuffix(sb.String(), "\n")
}

func (f *FileTree) walk(fn func(n navigator.Node, depth int)) {
	if f.Tree == nil {
		return
	}
	f.Tree.Walk(func(n navigator.Node, depth int) bool {
		if f.MaxDepth > 0 && depth > f.MaxDepth {
			return false
		}
		fn(n, depth)
		return true
	})
}

func (f *FileTree) line(n navigator.Node, depth int) string {
	name := n.Name
	if n.IsRoot() {
		name = navigator.DefaultRootName
		if n.Name != "" && n.Name != navigator.RootPath {
			name = n.Name
		}
	}
	indent := strings.Repeat("  ", depth)
	if n.IsFolder() {
		return indent + styles.FolderIcon + " " + name + "/"
	}
	return indent + styles.FileIcon + " " + name + "  " + styles.FormatSize(n.Size)
}
