package components

import (
	"fmt"
	"strings"

	"admindash/internal/navigator"
	"admindash/internal/tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
)

// FileBrowser renders the current folder inside a scrolling viewport
type FileBrowser struct {
	viewport viewport.Model
	theme    styles.Theme
	height   int
	width    int
}

func NewFileBrowser(theme styles.Theme) *FileBrowser {
	vp := viewport.New(80, 20)

	return &FileBrowser{
		viewport: vp,
		theme:    theme,
		width:    80,
		height:   20,
	}
}

func (fb *FileBrowser) SetSize(width, height int) {
	if height < 3 {
		height = 3
	}
	fb.width = width
	fb.height = height
	fb.viewport.Width = width
	fb.viewport.Height = height
}

// Row formats a single listing entry
func (fb *FileBrowser) Row(n navigator.Node, cursor, selected bool) string {
	mark := " "
	if selected {
		mark = fb.theme.Selected.Render(styles.SelectedMark)
	}
	pointer := " "
	if cursor {
		pointer = styles.CursorMark
	}

	var name, detail string
	if n.IsFolder() {
		name = fb.theme.Folder.Render(styles.FolderIcon + " " + n.Name + "/")
		detail = fmt.Sprintf("%d items", n.ItemCount)
	} else {
		name = fb.theme.File.Render(styles.FileIcon + " " + n.Name)
		detail = styles.FormatSize(n.Size)
	}
	modified := ""
	if !n.Modified.IsZero() {
		modified = n.Modified.Format(TimeLayout)
	}

	line := fmt.Sprintf("%s %s %s  %s  %s", pointer, mark, name, fb.theme.Help.Render(detail), fb.theme.Help.Render(modified))
	if cursor {
		return fb.theme.Crumb.Render(line)
	}
	return line
}

// View renders listing with the cursor row scrolled into view
func (fb *FileBrowser) View(listing navigator.Listing, cursor int, selected func(id string) bool) string {
	nodes := listing.All()
	if len(nodes) == 0 {
		fb.viewport.SetContent(fb.theme.Help.Render("  (empty folder)"))
		fb.viewport.GotoTop()
		return fb.viewport.View()
	}

	lines := make([]string, len(nodes))
	for i, n := range nodes {
		lines[i] = fb.Row(n, i == cursor, selected(n.ID))
	}
	fb.viewport.SetContent(strings.Join(lines, "\n"))

	if cursor < fb.viewport.YOffset {
		fb.viewport.SetYOffset(cursor)
	} else if cursor >= fb.viewport.YOffset+fb.viewport.Height {
		fb.viewport.SetYOffset(cursor - fb.viewport.Height + 1)
	}
	return fb.viewport.View()
}

// Breadcrumbs renders the crumbs with their 1-9 jump numbers
func Breadcrumbs(theme styles.Theme, crumbs []navigator.Crumb) string {
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		label := c.Name
		if i < 9 {
			label = fmt.Sprintf("%d:%s", i+1, c.Name)
		}
		if i == len(crumbs)-1 {
			parts[i] = theme.Crumb.Bold(true).Render(label)
		} else {
			parts[i] = theme.Crumb.Render(label)
		}
	}
	return strings.Join(parts, theme.Help.Render(" / "))
}
