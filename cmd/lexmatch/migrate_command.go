package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lexmatch/internal/adapter/postgres"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/migrations"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending run-store migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := ctx.config.Database.DSN
			if dsn == "" {
				return domain.NewValidationError("database.dsn", "not configured")
			}

			applied, err := postgres.Migrate(cmd.Context(), dsn, migrations.FS)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "Applied migration %05d\n", v)
			}
			return nil
		},
	}
}
