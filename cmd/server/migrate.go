package main

import (
	"context"
	"fmt"

	"jewelry_store/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPool, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer dbPool.Close()
		config.GetLogger().Info("database schema is up to date")
		return nil
	},
}

// openDB connects with DB_* settings and applies the schema
func openDB(ctx context.Context) (*pgxpool.Pool, error) {
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load DB config: %w", err)
	}
	dbPool, err := config.ConnectDB(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return dbPool, nil
}
