package styles

import (
	"fmt"

	"admindash/internal/config"
)

// Default is the theme used when no config is loaded
var Default = NewTheme(config.GetTheme("default"))

// Markers drawn in front of listing rows
const (
	CursorMark   = "›"
	SelectedMark = "●"
	FolderIcon   = "▸"
	FileIcon     = "·"
)

// FormatSize renders a byte count the way file managers do
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(size)/float64(div), "KMGTPE"[exp])
}
