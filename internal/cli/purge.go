package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

var (
	purgeTaskID string
	purgeAll    bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete a task or every task, with their bids",
	Long: `Delete tasks without an ownership check.

  marketplace purge --task-id <id>   delete one task and its bids
  marketplace purge --all            delete every task and bid`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (purgeTaskID == "") == !purgeAll {
			return fmt.Errorf("exactly one of --task-id or --all is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := openStores(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connecting store: %w", err)
		}
		defer database.Close(context.Background())

		taskService := services.NewTaskService(st.tasks)
		out := cmd.OutOrStdout()

		if purgeTaskID != "" {
			if err := taskService.DeleteTask(ctx, purgeTaskID, ""); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted task %s\n", purgeTaskID)
			return nil
		}

		count, err := taskService.DeleteAllTasks(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d tasks\n", count)
		return nil
	},
}

func init() {
	purgeCmd.Flags().StringVar(&purgeTaskID, "task-id", "", "task to delete")
	purgeCmd.Flags().BoolVar(&purgeAll, "all", false, "delete every task")
	rootCmd.AddCommand(purgeCmd)
}
