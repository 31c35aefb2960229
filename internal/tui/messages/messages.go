package messages

import (
	"admindash/internal/dataset"
	"admindash/internal/watch"
)

// ErrorMsg reports a failure to show in the status bar
type ErrorMsg struct {
	Err error
}

// StatusMsg replaces the status line text
type StatusMsg struct {
	Text string
}

// SeedChangedMsg is sent when a seed file changes and a reload is pending
type SeedChangedMsg struct {
	Change watch.SeedChange
}

// ReloadMsg carries the result of a reload. Snapshot is only set when Err is nil.
type ReloadMsg struct {
	Snapshot dataset.Snapshot
	Err      error
}
