package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/pkg/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the SFS client once and update the online indicator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.Client.CheckStatus(cmd.Context()) != domain.ConnectivityOnline {
			return fmt.Errorf("%w: backend is offline", cli.ErrActionFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
