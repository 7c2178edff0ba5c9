package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sfsweb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sfsweb version %s\n", strings.TrimSpace(sfsweb.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
