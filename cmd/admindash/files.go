package main

import (
	"fmt"

	"admindash/internal/dataset"
	"admindash/internal/navigator"
	"admindash/internal/query"
	"admindash/internal/tui/components"
	"admindash/internal/tui/styles"

	"github.com/spf13/cobra"
)

var listingColumns = []string{"name", "kind", "size", "items", "modified"}

// NewFilesCmd creates the file tree commands
func NewFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Browse the file manager tree",
	}
	cmd.AddCommand(newFilesLsCmd())
	cmd.AddCommand(newFilesTreeCmd())
	return cmd
}

func newFilesLsCmd() *cobra.Command {
	var (
		flags   queryFlags
		pattern string
	)

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List one folder, folders first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			nav := navigator.New(snap.Tree)
			if len(args) == 1 {
				if err := nav.JumpTo(args[0]); err != nil {
					return err
				}
			}

			base := cfg.Query(dataset.ScreenFiles, query.Query{
				SortField:     navigator.SortName,
				SortDirection: query.Asc,
			})
			q, err := flags.apply(base)
			if err != nil {
				return err
			}
			if pattern != "" {
				q = q.WithFilter(navigator.FilterPattern, pattern)
			}
			listing, err := nav.List(q)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printHeader(w, nav.CurrentPath())
			if listing.Len() > 0 {
				fmt.Fprintln(w, components.RecordTable(styles.FromConfig(cfg), listingColumns, listingView(listing), -1, 0))
			}
			fmt.Fprintln(w, infoText(fmt.Sprintf("%d folders, %d files", len(listing.Folders), len(listing.Files))))
			return nil
		},
	}

	flags.register(cmd, "")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "glob on the entry name, e.g. '*.pdf'")
	return cmd
}

// listingView turns folder entries into display records
func listingView(l navigator.Listing) query.View {
	nodes := l.All()
	view := make(query.View, len(nodes))
	for i, n := range nodes {
		r := query.Record{
			query.IDField: n.ID,
			"name":        n.Name,
			"kind":        string(n.Kind),
			"modified":    n.Modified,
		}
		if n.IsFolder() {
			r["name"] = n.Name + "/"
			r["items"] = n.ItemCount
		} else {
			r["size"] = styles.FormatSize(n.Size)
		}
		view[i] = r
	}
	return view
}

func newFilesTreeCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the whole tree as an outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			tree := components.NewFileTree(snap.Tree)
			tree.MaxDepth = depth
			fmt.Fprintln(cmd.OutOrStdout(), tree.View(styles.FromConfig(cfg)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum depth to print (0 = unlimited)")
	return cmd
}
