package styles

import (
	"admindash/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the core UI styles, built from the configured palette
type Theme struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Folder    lipgloss.Style
	File      lipgloss.Style
	Crumb     lipgloss.Style
	Menu      lipgloss.Style
	Help      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Border    lipgloss.Color
}

// NewTheme builds styles from a palette as returned by config.GetTheme
func NewTheme(colors map[string]string) Theme {
	primary := lipgloss.Color(colors["primary"])
	emphasis := lipgloss.Color(colors["emphasis"])
	info := lipgloss.Color(colors["info"])
	border := lipgloss.Color(colors["border"])

	return Theme{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Tab: lipgloss.NewStyle().
			Foreground(info).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(emphasis).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["success"])).
			Bold(true),
		Folder: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")),
		Crumb: lipgloss.NewStyle().
			Foreground(emphasis),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["warning"])),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["error"])),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors["success"])),
		Border: border,
	}
}

// FromConfig builds the theme selected in cfg. A nil config gets the default.
func FromConfig(cfg *config.Config) Theme {
	if cfg == nil {
		return Default
	}
	return NewTheme(map[string]string{
		"primary":  cfg.Theme.Primary,
		"success":  cfg.Theme.Success,
		"warning":  cfg.Theme.Warning,
		"error":    cfg.Theme.Error,
		"info":     cfg.Theme.Info,
		"emphasis": cfg.Theme.Emphasis,
		"border":   cfg.Theme.Border,
	})
}
