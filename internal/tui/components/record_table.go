package components

import (
	"time"

	"admindash/internal/query"
	"admindash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TimeLayout is how timestamp cells are printed
const TimeLayout = "2006-01-02 15:04"

// Cell renders one record value for display
func Cell(r query.Record, column string) string {
	if t, ok := r[column].(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return t.Format(TimeLayout)
	}
	return r.String(column)
}

// RecordTable renders view as a bordered table with one column per entry of
// columns. The row at cursor is highlighted; pass -1 for none.
func RecordTable(theme styles.Theme, columns []string, view query.View, cursor, width int) string {
	rows := make([][]string, len(view))
	for i, r := range view {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = Cell(r, c)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.Header
			case row == cursor:
				return theme.Cursor
			default:
				return theme.Cell
			}
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}
