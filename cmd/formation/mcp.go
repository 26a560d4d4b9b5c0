package main

import (
	"context"
	"log"
	"os"

	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [path]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts formation as an MCP Server.
This allows AI agents to look up player positions as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		baseURL, _ := cmd.Flags().GetString("base-url")
		watch, _ := cmd.Flags().GetBool("watch")

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.ServeMCP(ctx, env, cli.MCPOptions{
			Path:      documentPath(args),
			Transport: transport,
			Addr:      addr,
			BaseURL:   baseURL,
			Watch:     watch,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", "", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL (only for SSE)")
	mcpCmd.Flags().BoolP("watch", "w", false, "Reload the document when it changes")
}
