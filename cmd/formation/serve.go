package main

import (
	"context"

	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Start the HTTP server",
	Long: `Serves a formation document as a JSON API over HTTP: roles, positions,
samples, training, the document itself, server-sent events and Prometheus
metrics. With --watch the document is reloaded whenever it changes on disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		watch, _ := cmd.Flags().GetBool("watch")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, env, cli.ServeOptions{
			Path:  documentPath(args),
			Addr:  addr,
			Watch: watch,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (defaults to the configured http.addr)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the document when it changes")
}
