package main

import (
	"fmt"
	"os"

	"github.com/aretw0/formation/internal/cli"
	"github.com/aretw0/formation/internal/config"
	"github.com/spf13/cobra"
)

// env is built once flags are parsed, before any subcommand runs.
var env *cli.Env

var rootCmd = &cobra.Command{
	Use:   "formation",
	Short: "Formation computes team positions from a focus point",
	Long: `Formation loads positional-formation documents and answers where each of
the eleven players should stand for a given focus point (usually the ball).
Documents can be created, trained from recorded samples, served over HTTP or
MCP, and kept in a file or Redis document store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		env, err = cli.NewEnv(cfg, debug, cmd.OutOrStdout())
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// documentPath resolves the document argument, falling back to the
// configured default.
func documentPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return env.Config.Document
}
