package main

import (
	"time"

	"admindash/internal/dataset"
	"admindash/internal/tui"
	"admindash/internal/tui/messages"
	"admindash/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewTUICmd creates the TUI command
func NewTUICmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal dashboard",
		Long: `Start the interactive dashboard. When a data directory is configured and
data.watch is on, seed file changes are reloaded while it runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			m, err := tui.New(cfg, snap)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen())

			if cfg.Data.Dir != "" && cfg.Data.Watch && !noWatch {
				reloader, err := watch.NewReloader(cfg.Data.Dir, dataset.NewStore(snap), time.Duration(cfg.Data.DebounceMs)*time.Millisecond)
				if err != nil {
					return err
				}
				reloader.OnChange(func(c watch.SeedChange) {
					p.Send(messages.SeedChangedMsg{Change: c})
				})
				reloader.OnReload(func(s dataset.Snapshot, err error) {
					p.Send(messages.ReloadMsg{Snapshot: s, Err: err})
				})
				if err := reloader.Start(watchContext(cmd)); err != nil {
					return err
				}
				defer reloader.Stop()
			}

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload seed files while running")
	return cmd
}
