package main

import (
	"fmt"
	"io"
	"strings"

	"admindash/internal/dataset"
	"admindash/internal/errors"
	"admindash/internal/query"
	"admindash/internal/tui/components"
	"admindash/internal/tui/styles"

	"github.com/spf13/cobra"
)

// queryFlags are the query flags shared by every listing command
type queryFlags struct {
	search  string
	filters []string
	sortBy  string
	order   string
}

func (f *queryFlags) register(cmd *cobra.Command, filterHelp string) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive search term")
	if filterHelp != "" {
		cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, filterHelp)
	}
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "field to sort by")
	cmd.Flags().StringVar(&f.order, "order", "", "sort order: asc or desc")
}

// apply layers the flags over base. Field and key names are checked later by
// the engine that runs the query.
func (f *queryFlags) apply(base query.Query) (query.Query, error) {
	q := base
	if f.search != "" {
		q = q.WithTerm(f.search)
	}
	for _, raw := range f.filters {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return query.Query{}, errors.NewInvalidInputError("filter must be key=value", nil).WithContext("filter", raw)
		}
		q = q.WithFilter(key, value)
	}
	if f.sortBy != "" || f.order != "" {
		field, dir := q.SortField, q.SortDirection
		if f.sortBy != "" {
			field = f.sortBy
		}
		if f.order != "" {
			var err error
			if dir, err = query.ParseDirection(f.order); err != nil {
				return query.Query{}, err
			}
		}
		q = q.WithSort(field, dir)
	}
	return q, nil
}

// NewScreenCmd creates the listing command of one record screen
func NewScreenCmd(screen dataset.Screen) *cobra.Command {
	var (
		flags queryFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   screen.Name,
		Short: "List " + strings.ToLower(screen.Title),
		Long: fmt.Sprintf(`Search, filter and sort %s.

Filters: %s. A filter value of "all" matches everything.`,
			strings.ToLower(screen.Title), strings.Join(screen.Engine.FilterKeys(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			q, err := flags.apply(cfg.Query(screen.Name, screen.Default))
			if err != nil {
				return err
			}
			view, err := screen.Run(snap, q)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Screen(screen.Name).Limit
			}
			printView(cmd.OutOrStdout(), screen, view, limit)
			return nil
		},
	}

	flags.register(cmd, "filter as key=value, repeatable")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n records (0 = all)")
	return cmd
}

// printView writes view as a table followed by a record count
func printView(w io.Writer, screen dataset.Screen, view query.View, limit int) {
	shown := view
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	printHeader(w, screen.Title)
	if len(shown) > 0 {
		fmt.Fprintln(w, components.RecordTable(styles.FromConfig(cfg), screen.Columns, shown, -1, 0))
	}
	fmt.Fprintln(w, infoText(fmt.Sprintf("%d of %d records", len(shown), len(view))))
}
