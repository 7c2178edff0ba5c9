package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/sfsweb"
	"github.com/aretw0/sfsweb/internal/cli"
	"github.com/aretw0/sfsweb/internal/presentation/tui"
	httpadapter "github.com/aretw0/sfsweb/pkg/adapters/http"
	"github.com/aretw0/sfsweb/pkg/ports"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Poll the SFS client and serve the status board over HTTP",
	Long: `Keeps the online indicator current and serves /status, /events (SSE),
/metrics and /healthz until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(sfsweb.Version))
		}

		streams := httpadapter.NewStreamManager(nil)
		rt, err := newRuntime(cmd, cli.Options{Sinks: []ports.Presenter{streams}})
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.Config.MonitorAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		handler := httpadapter.NewHandler(rt.Client.Board(),
			httpadapter.WithStreams(streams),
			httpadapter.WithGatherer(rt.Registry),
			httpadapter.WithLogger(rt.Logger),
		)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return rt.Client.Monitor(ctx)
		})
		g.Go(func() error {
			defer streams.Close()
			err := httpadapter.Serve(ctx, addr, handler, rt.Logger)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().String("addr", "", "Listen address (overrides monitor_addr)")
	monitorCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
