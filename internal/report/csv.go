// Package report writes run output tables and renders run summaries.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/matcher"
)

// ResultColumns returns the results table header. Concreteness columns are
// present only when concreteness was part of the match.
func ResultColumns(useConcreteness bool) []string {
	cols := []string{"target_word", "target_class", "target_source", "target_condition", "target_syllables", "target_frequency"}
	if useConcreteness {
		cols = append(cols, "target_concreteness")
	}
	cols = append(cols, "status", "filler_word", "filler_syllables", "filler_frequency")
	if useConcreteness {
		cols = append(cols, "filler_concreteness")
	}
	return append(cols, "filler_condition", "reason")
}

// WriteResults writes one row per result in the given order.
func WriteResults(w io.Writer, results []domain.MatchResult, useConcreteness bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultColumns(useConcreteness)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range results {
		r := &results[i]
		t := &r.Target

		row := []string{t.Word, string(t.Class), t.Source, t.Condition}
		if t.Resolved {
			row = append(row, strconv.Itoa(t.SyllableCount), formatFloat(t.FrequencyScore))
		} else {
			row = append(row, "", "")
		}
		if useConcreteness {
			row = append(row, formatOptional(t.Concreteness))
		}

		row = append(row, string(r.Status()))
		if f := r.Filler; f != nil {
			row = append(row, f.Word, strconv.Itoa(f.SyllableCount), formatFloat(f.FrequencyScore))
			if useConcreteness {
				row = append(row, formatOptional(f.Concreteness))
			}
		} else {
			row = append(row, "", "", "")
			if useConcreteness {
				row = append(row, "")
			}
		}
		row = append(row, r.Condition, r.Reason())

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// PartitionColumns is the partition table header.
var PartitionColumns = []string{"pass", "level", "word", "key", "count"}

// WritePartition writes every kept item of every group, in group order.
func WritePartition(w io.Writer, groups []matcher.PartitionGroup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PartitionColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range groups {
		for _, it := range g.Items {
			row := []string{g.Pass, string(g.Level), it.Word, it.Key, strconv.Itoa(it.Counts[g.Dimension])}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write %s/%s: %w", g.Pass, g.Level, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
