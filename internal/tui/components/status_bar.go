package components

import (
	"admindash/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows one line of status text, a spinner while a reload is
// pending, and errors in the error style.
type StatusBar struct {
	text       string
	isError    bool
	style      lipgloss.Style
	errorStyle lipgloss.Style
	spinner    spinner.Model
	loading    bool
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Help

	return &StatusBar{
		style:      theme.Status,
		errorStyle: theme.Error,
		spinner:    s,
	}
}

// SetLoading toggles the spinner. Starting it returns the first tick.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	start := loading && !s.loading
	s.loading = loading
	if start {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

// SetError shows err, or clears the line when err is nil
func (s *StatusBar) SetError(err error) {
	if err == nil {
		s.SetText("")
		return
	}
	s.text = err.Error()
	s.isError = true
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	if s.text == "" && !s.loading {
		return ""
	}

	style := s.style
	if s.isError {
		style = s.errorStyle
	}
	if s.loading {
		return s.spinner.View() + " " + style.Render(s.text)
	}
	return style.Render(s.text)
}
