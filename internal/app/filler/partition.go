package filler

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/heartmarshall/lexmatch/internal/app/filler/observations"
	"github.com/heartmarshall/lexmatch/internal/config"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/matcher"
	"github.com/heartmarshall/lexmatch/internal/report"
)

// Partition reads the observation table, runs the configured passes and,
// when outPath is set, writes the partition table.
func Partition(ctx context.Context, log *slog.Logger, cfg config.PartitionConfig, outPath string) ([]matcher.PartitionGroup, error) {
	if cfg.ObservationsPath == "" {
		return nil, domain.NewValidationError("partition.observations_path", "path not configured")
	}
	if len(cfg.Passes) == 0 {
		return nil, domain.NewValidationError("partition.passes", "at least one pass is required")
	}

	passes := make([]matcher.PartitionPass, len(cfg.Passes))
	var dims []string
	seen := make(map[string]bool)
	for i, ps := range cfg.Passes {
		passes[i] = matcher.PartitionPass{Name: ps.Name, Dimension: ps.Dimension, LowBelow: ps.LowBelow, HighAbove: ps.HighAbove}
		if !seen[ps.Dimension] {
			seen[ps.Dimension] = true
			dims = append(dims, ps.Dimension)
		}
	}

	parsed, err := observations.Parse(cfg.ObservationsPath, observations.Columns{
		Word:       cfg.WordColumn,
		Key:        cfg.KeyColumn,
		Dimensions: dims,
	})
	if err != nil {
		return nil, fmt.Errorf("parse observations: %w", err)
	}
	log.Info("observations parsed",
		slog.Int("rows", parsed.Stats.Parsed),
		slog.Int("missing", parsed.Stats.Missing),
		slog.Int("bad_counts", parsed.Stats.BadCounts),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]matcher.ObservedItem, len(parsed.Rows))
	for i, r := range parsed.Rows {
		items[i] = matcher.ObservedItem{Word: r.Word, Key: r.Key, Counts: r.Counts}
	}

	groups, err := matcher.Partition(items, passes)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	for _, g := range groups {
		log.Info("group built",
			slog.String("pass", g.Pass),
			slog.String("level", string(g.Level)),
			slog.Int("items", len(g.Items)),
			slog.Int("discarded", g.Discarded),
		)
	}

	if outPath == "" {
		return groups, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create partition file: %w", err)
	}
	if err := report.WritePartition(f, groups); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write partition: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close partition file: %w", err)
	}
	return groups, nil
}
