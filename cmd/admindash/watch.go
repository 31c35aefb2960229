package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"admindash/internal/dataset"
	"admindash/internal/errors"
	"admindash/internal/log"
	"admindash/internal/tui/components"
	"admindash/internal/tui/styles"
	"admindash/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "watch <screen>",
		Short: "Re-print a screen whenever its seed files change",
		Long: `Watch the data directory and print the screen again after every reload.
The screen is one of the record screens or "files" for the tree outline.
Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if cfg.Data.Dir == "" {
				return errors.NewConfigError("watch needs a data directory", "data.dir", errors.InvalidConfig, nil)
			}

			render := func(snap dataset.Snapshot) error {
				if name == dataset.ScreenFiles {
					fmt.Fprintln(cmd.OutOrStdout(), components.NewFileTree(snap.Tree).View(styles.FromConfig(cfg)))
					return nil
				}
				screen, err := dataset.LookupScreen(name)
				if err != nil {
					return err
				}
				q, err := flags.apply(cfg.Query(name, screen.Default))
				if err != nil {
					return err
				}
				view, err := screen.Run(snap, q)
				if err != nil {
					return err
				}
				printView(cmd.OutOrStdout(), screen, view, cfg.Screen(name).Limit)
				return nil
			}

			initial, err := loadSnapshot()
			if err != nil {
				return err
			}
			if err := render(initial); err != nil {
				return err
			}

			store := dataset.NewStore(initial)
			reloader, err := watch.NewReloader(cfg.Data.Dir, store, time.Duration(cfg.Data.DebounceMs)*time.Millisecond)
			if err != nil {
				return err
			}

			var mu sync.Mutex
			reloader.OnReload(func(snap dataset.Snapshot, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), errorText(err.Error()))
					return
				}
				fmt.Fprintln(cmd.OutOrStdout(), infoText("reloaded at "+time.Now().Format(time.TimeOnly)))
				if err := render(snap); err != nil {
					log.LogError(err, "Failed to render reloaded data")
				}
			})

			ctx, stop := signal.NotifyContext(watchContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := reloader.Start(ctx); err != nil {
				return err
			}
			defer reloader.Stop()

			fmt.Fprintln(cmd.ErrOrStderr(), infoText("Watching "+cfg.Data.Dir+". Press Ctrl+C to stop."))
			<-ctx.Done()
			return nil
		},
	}

	flags.register(cmd, "filter as key=value, repeatable")
	return cmd
}

// watchContext is cmd.Context or a background context when cobra has none
func watchContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
