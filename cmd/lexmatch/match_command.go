package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lexmatch/internal/adapter/postgres/matchrun"
	"github.com/heartmarshall/lexmatch/internal/app/filler"
	"github.com/heartmarshall/lexmatch/internal/report"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun         bool
		strict         bool
		seed           uint64
		order          string
		noConcreteness bool
		outPath        string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Prepare the corpus and draw one filler per critical stimulus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *ctx.config
			flags := cmd.Flags()
			if flags.Changed("seed") {
				cfg.Match.Seed = seed
			}
			if flags.Changed("order") {
				cfg.Match.Order = order
			}
			if flags.Changed("no-concreteness") {
				cfg.Match.NoConcreteness = noConcreteness
			}
			if flags.Changed("out") {
				cfg.Output.ResultsPath = outPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := ctx.log()

			var store filler.RunStore
			if cfg.Database.Enabled() && !dryRun {
				pool, err := ctx.openPool(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()
				store = matchrun.New(pool)
			}

			pipeline := filler.NewPipeline(log, store, filler.Config{
				Corpus:      cfg.Corpus,
				Match:       cfg.Match,
				ResultsPath: cfg.Output.ResultsPath,
				DryRun:      dryRun,
			})
			outcome, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.PrepareStages(outcome.Stats))
			if dryRun {
				return nil
			}

			summary := outcome.Run.Summary
			fmt.Fprintln(out, report.RunSummary(summary, outcome.Conditions))
			if unmatched := report.UnmatchedTargets(outcome.Run.Results); unmatched != "" {
				fmt.Fprintln(out, unmatched)
			}
			if store != nil {
				fmt.Fprintf(out, "Saved run %s\n", outcome.RunID)
			}
			if cfg.Output.ResultsPath != "" {
				fmt.Fprintf(out, "Wrote %s\n", cfg.Output.ResultsPath)
			}

			if strict && summary.Unmatched > 0 {
				return fmt.Errorf("%d of %d targets unmatched", summary.Unmatched, summary.Targets)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Prepare the corpus and report counts without matching")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any target is unmatched")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 derives one from the clock)")
	cmd.Flags().StringVar(&order, "order", "", "Target processing order: input or scarcity")
	cmd.Flags().BoolVar(&noConcreteness, "no-concreteness", false, "Match on frequency, class and syllables only")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Results CSV path (empty disables the file)")

	return cmd
}
