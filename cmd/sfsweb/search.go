package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Run a search query",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.Search(cmd.Context(), strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
