package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/lexmatch/internal/adapter/postgres/matchrun"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/report"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect persisted matching runs",
	}
	cmd.AddCommand(newRunsShowCommand(ctx))
	cmd.AddCommand(newRunsExportCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the summary and unmatched targets of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}

			pool, err := ctx.openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()
			repo := matchrun.New(pool)

			run, err := repo.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			unmatched, err := repo.ListResults(cmd.Context(), id, matchrun.ResultFilter{Status: domain.StatusUnmatched})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s created %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintln(out, report.RunSummary(run.Summary, nil))
			if table := report.UnmatchedTargets(unmatched); table != "" {
				fmt.Fprintln(out, table)
			}
			return nil
		},
	}
}

func newRunsExportCommand(ctx *commandContext) *cobra.Command {
	var (
		status string
		limit  uint64
	)

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write the stored results of a run as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}
			filter := matchrun.ResultFilter{Status: domain.MatchStatus(status), Limit: limit}
			if status != "" && !filter.Status.IsValid() {
				return domain.NewValidationError("status", fmt.Sprintf("unknown status %q (want matched or unmatched)", status))
			}

			pool, err := ctx.openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()
			repo := matchrun.New(pool)

			run, err := repo.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			results, err := repo.ListResults(cmd.Context(), id, filter)
			if err != nil {
				return err
			}
			return report.WriteResults(cmd.OutOrStdout(), results, run.Summary.Tolerances.UseConcreteness)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only rows with this status: matched or unmatched")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "Maximum rows to export (0 = all)")

	return cmd
}

func parseRunID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("run-id", err.Error())
	}
	return id, nil
}
