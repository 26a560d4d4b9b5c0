package main

import (
	"github.com/aretw0/formation/internal/cli"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:   "position [path]",
	Short: "Compute target positions for a focus point",
	Long: `Prints "x y" for the player given with --unum, or a table for the whole
team when --unum is omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		unum, _ := cmd.Flags().GetInt("unum")
		return cli.Position(env, documentPath(args), geom.V(x, y), unum)
	},
}

func init() {
	rootCmd.AddCommand(positionCmd)
	positionCmd.Flags().Float64("x", 0, "Focus point x")
	positionCmd.Flags().Float64("y", 0, "Focus point y")
	positionCmd.Flags().IntP("unum", "u", 0, "Uniform number 1..11 (0 for the whole team)")
}
