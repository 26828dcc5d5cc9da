package report

import (
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/heartmarshall/lexmatch/internal/corpus"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/matcher"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// RunSummary renders the matching diagnostics and, when labels were
// assigned, the per-label counts.
func RunSummary(s domain.Summary, conditions map[string]int) string {
	rows := [][]string{
		{"targets", strconv.Itoa(s.Targets)},
		{"matched", strconv.Itoa(s.Matched)},
		{"unmatched", strconv.Itoa(s.Unmatched)},
		{"pool before", strconv.Itoa(s.PoolBefore)},
		{"pool after", strconv.Itoa(s.PoolAfter)},
		{"frequency tolerance", formatFloat(s.Tolerances.Frequency)},
	}
	if s.Tolerances.UseConcreteness {
		rows = append(rows, []string{"concreteness tolerance", formatFloat(s.Tolerances.Concreteness)})
	} else {
		rows = append(rows, []string{"concreteness tolerance", "off"})
	}
	rows = append(rows,
		[]string{"order", string(s.Order)},
		[]string{"seed", strconv.FormatUint(s.Seed, 10)},
	)

	labels := make([]string, 0, len(conditions))
	for l := range conditions {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	for _, l := range labels {
		rows = append(rows, []string{"condition " + l, strconv.Itoa(conditions[l])})
	}

	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

// PrepareStages renders the corpus preparation counts.
func PrepareStages(s corpus.Stats) string {
	rows := [][]string{
		{"reference rows", strconv.Itoa(s.ReferenceRows)},
		{"syllables from pronunciations", strconv.Itoa(s.SyllablesFilled)},
		{"no syllable count", strconv.Itoa(s.NoSyllables)},
		{"rejected: multi-token", strconv.Itoa(s.MultiToken)},
		{"rejected: too short", strconv.Itoa(s.TooShort)},
		{"rejected: proper noun", strconv.Itoa(s.ProperNoun)},
		{"duplicates", strconv.Itoa(s.Duplicates)},
		{"no frequency", strconv.Itoa(s.NoFrequency)},
		{"no concreteness", strconv.Itoa(s.NoConcreteness)},
		{"target overlap", strconv.Itoa(s.TargetOverlap)},
		{"pool size", strconv.Itoa(s.PoolSize)},
		{"stimulus rows", strconv.Itoa(s.StimulusRows)},
		{"stimulus repeats", strconv.Itoa(s.StimulusRepeats)},
		{"targets", strconv.Itoa(s.Targets)},
		{"unresolved targets", strconv.Itoa(s.Unresolved)},
	}
	return renderTable([]string{"Stage", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

// UnmatchedTargets renders the unmatched rows with their reasons, or ""
// when every target matched.
func UnmatchedTargets(results []domain.MatchResult) string {
	var rows [][]string
	for i := range results {
		r := &results[i]
		if r.Matched() {
			continue
		}
		rows = append(rows, []string{r.Target.Word, string(r.Target.Class), r.Reason()})
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]string{"Target", "Class", "Reason"}, rows, nil)
}

// PartitionGroups renders group sizes.
func PartitionGroups(groups []matcher.PartitionGroup) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		words := make(map[string]bool, len(g.Items))
		for _, it := range g.Items {
			words[it.Word] = true
		}
		rows = append(rows, []string{
			g.Pass,
			string(g.Level),
			strconv.Itoa(len(g.Items)),
			strconv.Itoa(len(words)),
			strconv.Itoa(g.Discarded),
		})
	}
	return renderTable(
		[]string{"Pass", "Level", "Items", "Words", "Discarded"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
