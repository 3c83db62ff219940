package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/campus/storage/database"
)

// mockable
var (
	migrateFunc = database.Migrate
	statusFunc  = database.Status
)

func (cli *commandLine) migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applied, err := migrateFunc(cmd.Context(), cli.db)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cli.out, "database is up to date")
				return nil
			}
			fmt.Fprintf(cli.out, "applied: %s\n", strings.Join(applied, ", "))
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List the migrations and whether they were applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := statusFunc(cmd.Context(), cli.db)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
			for _, st := range states {
				appliedAt := "pending"
				if st.Applied {
					appliedAt = st.AppliedAt.UTC().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%s\t%s\n", st.Name, appliedAt)
			}
			return w.Flush()
		},
	})
	return cmd
}
