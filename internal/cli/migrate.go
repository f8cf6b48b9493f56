package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes for the configured store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := openStores(ctx, cfg); err != nil {
			return fmt.Errorf("connecting store: %w", err)
		}
		defer database.Close(context.Background())

		if err := migrateStores(ctx, cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
