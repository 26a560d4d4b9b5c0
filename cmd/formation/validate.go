package main

import (
	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a formation document",
	Long:  `Decodes the document, checks every role and model row, and verifies that printing it back is stable.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(env, documentPath(args))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
