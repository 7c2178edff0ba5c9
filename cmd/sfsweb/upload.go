package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/pkg/actions"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a file into a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("dest")
		in := actions.UploadInput{DestFolder: dest}
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			in.File = f
			in.Filename = filepath.Base(args[0])
		}

		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		return cli.Result(rt.Client.Upload(cmd.Context(), in))
	},
}

var uploadPictureCmd = &cobra.Command{
	Use:   "upload-pfp [image]",
	Short: "Replace the profile picture",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in actions.PictureInput
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			in.Image = f
			in.Filename = filepath.Base(args[0])
		}

		rt, err := newRuntime(cmd, cli.Options{})
		if err != nil {
			return err
		}
		defer rt.Close()
		out, err := rt.Client.UploadProfilePicture(cmd.Context(), in)
		if res, ok := out.Body.(actions.PictureResult); ok {
			fmt.Fprintln(cmd.OutOrStdout(), "picture:", res.ImageURL)
		}
		return cli.Result(out, err)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(uploadPictureCmd)

	uploadCmd.Flags().StringP("dest", "d", "", "Destination folder")
}
