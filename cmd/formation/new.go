package main

import (
	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [path]",
	Short: "Create a formation document",
	Long: `Creates a document for the chosen method filled with the default 4-3-3
roles. Use "-" as path to print it instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		empty, _ := cmd.Flags().GetBool("empty")
		force, _ := cmd.Flags().GetBool("force")

		return cli.NewDocument(env, cli.NewOptions{
			Path:  documentPath(args),
			Model: model,
			Empty: empty,
			Force: force,
		})
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringP("model", "m", "", "Formation method (defaults to the configured model)")
	newCmd.Flags().Bool("empty", false, "Leave every slot an unnamed side role")
	newCmd.Flags().BoolP("force", "f", false, "Overwrite an existing document")
}
