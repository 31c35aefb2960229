package main

import (
	"fmt"
	"io"

	"admindash/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func palette() map[string]string {
	if cfg == nil {
		return config.GetTheme("default")
	}
	return config.GetTheme(cfg.Theme.Name)
}

func colored(key, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette()[key])).Render(s)
}

func errorText(s string) string   { return colored("error", "✗ "+s) }
func successText(s string) string { return colored("success", s) }
func infoText(s string) string    { return colored("info", s) }

func headerText(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette()["primary"])).Render(s)
}

// printHeader writes a bold title line
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, headerText(title))
}
