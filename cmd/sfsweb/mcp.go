package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	mcpadapter "github.com/aretw0/sfsweb/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the actions as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol; status writes go nowhere.
		rt, err := newRuntime(cmd, cli.Options{
			Out:       io.Discard,
			Confirmer: mcpadapter.Confirmer(),
		})
		if err != nil {
			return err
		}
		defer rt.Close()

		return mcpadapter.NewServer(rt.Client).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
