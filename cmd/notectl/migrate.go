package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"juan-note/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Opens the store, applies every pending schema migration and prints
the applied versions. Running it again is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		versions, err := storage.AppliedVersions(ctx, a.db)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "schema at version %d of %d\n", len(versions), storage.LatestVersion())
		for _, v := range versions {
			fmt.Fprintf(out, "  applied %d\n", v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
