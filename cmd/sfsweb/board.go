package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/pkg/adapters/terminal"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the persisted status board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()

		snap := rt.Client.Board().Snapshot()
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		return terminal.NewPresenter(cmd.OutOrStdout()).Board(snap)
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().Bool("json", false, "Print the board as JSON")
}
