package main

import (
	"errors"
	"fmt"

	"github.com/jmorenovfever/AI4Devs-backend-fever/internal/migrations"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  "Applies the embedded schema migrations to the configured PostgreSQL database and optionally inserts the demo position.",
	RunE:  runMigrate,
}

var migrateSeed bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "Insert the demo position after migrating")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logx.Sync()

	if cfg.Database.IsMemory() {
		return errors.New("migrate requires database.driver=postgres")
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := contextOrBackground(cmd)
	n, err := migrations.Apply(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", n)

	if migrateSeed {
		id, err := migrations.Seed(ctx, db)
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Demo position id: %s\n", id)
	}
	return nil
}
