package main

import (
	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train [path]",
	Short: "Fit the formation model to its samples",
	Long: `Trains the document's model on its samples section, or on a CSV corpus of
focus_x,focus_y,p1_x,p1_y,...,p11_x,p11_y rows given with --samples, and
writes the result back. A failed training leaves the document untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		csv, _ := cmd.Flags().GetString("samples")
		output, _ := cmd.Flags().GetString("output")
		return cli.Train(env, cli.TrainOptions{
			Path:   documentPath(args),
			CSV:    csv,
			Output: output,
		})
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringP("samples", "s", "", "CSV corpus replacing the document's samples")
	trainCmd.Flags().StringP("output", "o", "", "Write the trained document here instead (- for stdout)")
}
