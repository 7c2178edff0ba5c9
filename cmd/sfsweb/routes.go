package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/sfsweb/internal/presentation/tui"
	"github.com/aretw0/sfsweb/pkg/contract"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the SFS backend routes the actions are sent to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := contract.Routes()
		if err != nil {
			return err
		}

		plain, _ := cmd.Flags().GetBool("plain")
		styled := !plain && cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		render, err := tui.NewRenderer(styled)
		if err != nil {
			return err
		}
		out, err := render(tui.RoutesMarkdown(routes))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)

	routesCmd.Flags().Bool("plain", false, "Print raw markdown")
}
