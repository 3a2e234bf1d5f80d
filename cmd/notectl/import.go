package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"juan-note/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Create a note from every markdown file in a directory",
	Long: `Walks <dir> for .md files, skipping hidden directories such as .obsidian.
Each file becomes a note titled by its first heading (or its filename) and
labelled with its folder.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		label, _ := cmd.Flags().GetString("label")
		ctx := cmd.Context()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		result, err := importer.NewImporter(a.notes).Import(ctx, args[0], importer.Options{DryRun: dryRun, Label: label})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "Show what would be imported without writing")
	importCmd.Flags().String("label", "", "Extra label for every imported note")
	rootCmd.AddCommand(importCmd)
}
