package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/pkg/actions"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Persist the SFS client settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var in actions.SettingsInput
		in.LocalBackup, _ = cmd.Flags().GetBool("local-backup")
		in.BackupDir, _ = cmd.Flags().GetString("backup-dir")
		in.Port, _ = cmd.Flags().GetString("port")
		in.BufferSize, _ = cmd.Flags().GetString("buffer-size")

		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.UpdateSettings(cmd.Context(), in))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().Bool("local-backup", false, "Keep a local backup")
	settingsCmd.Flags().String("backup-dir", "", "Local backup directory")
	settingsCmd.Flags().String("port", "", "Client port")
	settingsCmd.Flags().String("buffer-size", "", "Event buffer size")
}
