package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <command> [json-args]",
	Short: "Run a desktop bridge command and print its response",
	Example: `  notectl invoke get_all_notes
  notectl invoke create_note '{"request":{"title":"Buy milk","labels":["home"]}}'
  notectl invoke bulk_update_notes_done '{"noteIds":[1,2],"done":true}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var raw json.RawMessage
		if len(args) == 2 {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("arguments are not valid JSON: %s", args[1])
			}
			raw = json.RawMessage(args[1])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		resp, err := a.dispatcher.Invoke(ctx, args[0], raw)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the bridge commands accepted by invoke",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		for _, name := range a.dispatcher.Commands() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(commandsCmd)
}
