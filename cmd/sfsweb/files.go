package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/pkg/adapters/terminal"
)

var deleteFileCmd = &cobra.Command{
	Use:   "delete-file <file-id>",
	Short: "Delete a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.DeleteFile(cmd.Context(), firstArg(args)))
	},
}

var openLocationCmd = &cobra.Command{
	Use:   "open-loc <file-id>",
	Short: "Reveal a file's location on the machine running the SFS client",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.OpenLocation(cmd.Context(), firstArg(args)))
	},
}

var emptyBinCmd = &cobra.Command{
	Use:   "empty-bin",
	Short: "Permanently delete all items in the recycle bin",
	Long:  `Asks for confirmation first. Non-interactive input declines unless --yes is given.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirmer := terminal.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), terminal.AssumeYes(yes))

		rt, err := newRuntime(cmd, cli.Options{Confirmer: confirmer})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.EmptyRecycleBin(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(deleteFileCmd)
	rootCmd.AddCommand(openLocationCmd)
	rootCmd.AddCommand(emptyBinCmd)

	emptyBinCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
