package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of formation",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(formation.Version))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "formation version %s (document format %d)\n",
			strings.TrimSpace(formation.Version), formation.FormatVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "methods: %s\n", strings.Join(env.Registry.Names(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner")
}
