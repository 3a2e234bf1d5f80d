package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"juan-note/internal/service"
)

var assignStatesCmd = &cobra.Command{
	Use:   "assign-states",
	Short: "Give every note without a state one",
	Long: `Assigns a state to each note that has none. By default the state is
inferred from the done flag and labels; --legacy puts every such note in the
first state by position.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		legacy, _ := cmd.Flags().GetBool("legacy")
		ctx := cmd.Context()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		resp, err := a.notes.MigrateNotesToStates(ctx, service.MigrateStatesRequest{Legacy: legacy})
		if err != nil {
			return err
		}
		if !resp.Success {
			return fmt.Errorf("state assignment failed: %s", resp.Error)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

func init() {
	assignStatesCmd.Flags().Bool("legacy", false, "Use the first state instead of inferring one")
	rootCmd.AddCommand(assignStatesCmd)
}
