package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sfsweb",
	Short: "sfsweb drives a Simple File Sync client from the terminal",
	Long: `sfsweb submits the actions of the SFS web interface (upload, add, search,
settings, recycle bin, ...) to an SFS client and shows the resulting status.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().String("url", "", "Base URL of the SFS client")
	rootCmd.PersistentFlags().String("health-url", "", "URL polled for the online indicator")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig reads the config file and environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("url") {
		cfg.BaseURL, _ = cmd.Flags().GetString("url")
	}
	if cmd.Flags().Changed("health-url") {
		cfg.HealthURL, _ = cmd.Flags().GetString("health-url")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRuntime builds the client for a command. Status writes go to the command output.
func newRuntime(cmd *cobra.Command, opts cli.Options) (*cli.Runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if opts.Out == nil {
		opts.Out = cmd.OutOrStdout()
	}
	if opts.LogOut == nil {
		opts.LogOut = cmd.ErrOrStderr()
	}
	return cli.Build(cmd.Context(), cfg, opts)
}
