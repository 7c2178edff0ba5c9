package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
)

var addCmd = &cobra.Command{
	Use:   "add-new [path]",
	Short: "Register an existing file or folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.AddNew(cmd.Context(), firstArg(args)))
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover [folder]",
	Short: "Scan a folder and add its contents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.Discover(cmd.Context(), firstArg(args)))
	},
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(discoverCmd)
}
