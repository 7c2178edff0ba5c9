package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/pkg/actions"
)

var clearPictureCmd = &cobra.Command{
	Use:   "clear-pfp",
	Short: "Reset the profile picture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.ClearProfilePicture(cmd.Context()), nil)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit-profile",
	Short: "Update the profile fields",
	Long:  `Sends name, username and email. Fields that are not given are sent blank.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var in actions.ProfileInput
		in.Name, _ = cmd.Flags().GetString("name")
		in.Username, _ = cmd.Flags().GetString("username")
		in.Email, _ = cmd.Flags().GetString("email")

		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.EditProfile(cmd.Context(), in), nil)
	},
}

func init() {
	rootCmd.AddCommand(clearPictureCmd)
	rootCmd.AddCommand(editProfileCmd)

	editProfileCmd.Flags().String("name", "", "Display name")
	editProfileCmd.Flags().String("username", "", "Username")
	editProfileCmd.Flags().String("email", "", "Email address")
}
