package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	infrapostgres "github.com/watermelon/decision-engine/internal/infrastructure/postgres"
	"github.com/watermelon/decision-engine/pkg/postgres"
)

func migrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the decision log schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return errors.New("--dsn or DATABASE_URL is required")
			}

			var err error
			switch args[0] {
			case "up":
				err = postgres.RunMigrations(dsn, infrapostgres.Migrations, infrapostgres.MigrationsDir)
			case "down":
				err = postgres.RunMigrationsDown(dsn, infrapostgres.Migrations, infrapostgres.MigrationsDir)
			default:
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s complete\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")

	return cmd
}
