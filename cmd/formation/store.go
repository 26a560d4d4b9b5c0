package main

import (
	"context"

	"github.com/aretw0/formation/internal/cli"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage documents in the configured document store",
	Long: `Moves formation documents between local files and the document store
selected by store.kind (file, memory or redis).`,
}

// withBackend opens the configured store for the duration of fn.
func withBackend(fn func(ctx context.Context, b *cli.Backend) error) error {
	b, err := cli.OpenStore(env.Config.Store)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()
	return fn(ctx, b)
}

var storePushCmd = &cobra.Command{
	Use:   "push <path> [id]",
	Short: "Store a document, printing its id",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) > 1 {
			id = args[1]
		}
		return withBackend(func(ctx context.Context, b *cli.Backend) error {
			_, err := cli.Push(ctx, env, b, args[0], id)
			return err
		})
	},
}

var storePullCmd = &cobra.Command{
	Use:   "pull <id> [path]",
	Short: "Fetch a stored document (to stdout without a path)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) > 1 {
			path = args[1]
		}
		return withBackend(func(ctx context.Context, b *cli.Backend) error {
			return cli.Pull(ctx, env, b, args[0], path)
		})
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored document ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(ctx context.Context, b *cli.Backend) error {
			return cli.List(ctx, env, b)
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(ctx context.Context, b *cli.Backend) error {
			return cli.Delete(ctx, env, b, args[0])
		})
	},
}

var storeTrainCmd = &cobra.Command{
	Use:   "train <id>",
	Short: "Retrain a stored document in place",
	Long:  `Loads, trains and saves a stored document while holding its lock.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		csv, _ := cmd.Flags().GetString("samples")
		return withBackend(func(ctx context.Context, b *cli.Backend) error {
			return cli.TrainStored(ctx, env, b, args[0], csv)
		})
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePushCmd, storePullCmd, storeListCmd, storeDeleteCmd, storeTrainCmd)
	storeTrainCmd.Flags().StringP("samples", "s", "", "CSV corpus replacing the document's samples")
}
