package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lexmatch/internal/app/filler"
	"github.com/heartmarshall/lexmatch/internal/report"
)

func newPartitionCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Split observed items into low and high observation-count groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			path := cfg.Output.PartitionPath
			if cmd.Flags().Changed("out") {
				path = outPath
			}

			groups, err := filler.Partition(cmd.Context(), ctx.log(), cfg.Partition, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.PartitionGroups(groups))
			if path != "" {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Partition CSV path (empty disables the file)")

	return cmd
}
