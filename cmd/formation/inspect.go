package main

import (
	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Show the roles of a formation document",
	Long: `Prints the role/symmetry table of a document.

Formats:
- table (default): markdown table, styled on a terminal
- graph: Mermaid flowchart with mirror edges
- document: the normalized document text`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		highlight, _ := cmd.Flags().GetIntSlice("highlight")
		return cli.Inspect(env, documentPath(args), format, highlight)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "o", cli.FormatTable, "Output format: table, graph or document")
	inspectCmd.Flags().IntSlice("highlight", nil, "Uniform numbers to highlight in the graph")
}
