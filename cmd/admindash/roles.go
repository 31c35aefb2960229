package main

import (
	"fmt"

	"admindash/internal/permissions"
	"admindash/internal/query"
	"admindash/internal/tui/components"
	"admindash/internal/tui/styles"

	"github.com/spf13/cobra"
)

// NewRolesCmd creates the role permission commands
func NewRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Inspect role permissions",
	}
	cmd.AddCommand(newRolesListCmd())
	cmd.AddCommand(newRolesShowCmd())
	return cmd
}

func newRolesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles and how many permissions each grants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := make(query.View, 0, len(permissions.Roles()))
			for _, role := range permissions.Roles() {
				set, err := permissions.Derive(role)
				if err != nil {
					return err
				}
				view = append(view, query.Record{
					"role":    string(role),
					"granted": fmt.Sprintf("%d/%d", len(set.Granted()), len(permissions.All())),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), components.RecordTable(styles.FromConfig(cfg), []string{"role", "granted"}, view, -1, 0))
			return nil
		},
	}
}

func newRolesShowCmd() *cobra.Command {
	var grant, revoke []string

	cmd := &cobra.Command{
		Use:   "show <role>",
		Short: "Show the permissions of a role, with optional overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := permissions.ParseRole(args[0])
			if err != nil {
				return err
			}
			overrides, err := permissions.Overrides(grant, revoke)
			if err != nil {
				return err
			}
			set, err := permissions.Resolve(role, overrides)
			if err != nil {
				return err
			}

			changed := make(map[permissions.Permission]bool)
			for _, p := range set.Diff(role) {
				changed[p] = true
			}
			view := make(query.View, 0, len(set))
			for _, p := range permissions.All() {
				r := query.Record{"permission": string(p), "granted": "no"}
				if set[p] {
					r["granted"] = "yes"
				}
				if changed[p] {
					r["override"] = "*"
				}
				view = append(view, r)
			}

			w := cmd.OutOrStdout()
			printHeader(w, "Role "+string(role))
			fmt.Fprintln(w, components.RecordTable(styles.FromConfig(cfg), []string{"permission", "granted", "override"}, view, -1, 0))
			fmt.Fprintln(w, successText(fmt.Sprintf("%d of %d permissions granted", len(set.Granted()), len(set))))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&grant, "grant", nil, "permissions to grant on top of the role")
	cmd.Flags().StringSliceVar(&revoke, "revoke", nil, "permissions to revoke from the role (wins over --grant)")
	return cmd
}
