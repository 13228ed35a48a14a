package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/askbox/askbox/internal/db"
)

type dbFlags struct {
	driver     string
	connection string
}

func (f *dbFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.driver, "driver", envOr("DB_DRIVER", "sqlite"), "database driver (sqlite or pgx)")
	cmd.PersistentFlags().StringVar(&f.connection, "db", envOr("DB_CONNECTION", "./data/askbox.db"), "database connection string")
}

func MigrateCmd() *cobra.Command {
	flags := &dbFlags{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	flags.register(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), flags, func(ctx context.Context, database *sqlx.DB) error {
				return db.RunMigrations(ctx, database.DB, flags.driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), flags, func(ctx context.Context, database *sqlx.DB) error {
				return db.MigrateDown(ctx, database.DB, flags.driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), flags, func(ctx context.Context, database *sqlx.DB) error {
				version, err := db.Version(ctx, database.DB, flags.driver)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withDB(ctx context.Context, flags *dbFlags, fn func(context.Context, *sqlx.DB) error) error {
	database, err := db.Init(flags.driver, flags.connection)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close(database)

	return fn(ctx, database)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
