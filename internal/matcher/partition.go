package matcher

import (
	"fmt"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

// Level names one side of a partition pass.
type Level string

const (
	LevelLow  Level = "low"
	LevelHigh Level = "high"
)

// ObservedItem is one word instance with its observation counts per
// dimension. Key identifies the instance, e.g. the sentence it occurs in.
type ObservedItem struct {
	Word   string
	Key    string
	Counts map[string]int
}

// PartitionPass splits items on one dimension: counts below LowBelow go
// low, counts above HighAbove go high.
type PartitionPass struct {
	Name      string
	Dimension string
	LowBelow  int
	HighAbove int
}

// PartitionGroup is the output of one side of one pass. Discarded counts
// items dropped because their word already belongs to an earlier group.
type PartitionGroup struct {
	Pass      string
	Dimension string
	Level     Level
	Items     []ObservedItem
	Discarded int
}

// Partition runs passes in order. Each pass yields a low group then a high
// group. A word lands in at most one group across all passes; later groups
// drop its items. Items without the pass dimension are ignored by that pass.
func Partition(items []ObservedItem, passes []PartitionPass) ([]PartitionGroup, error) {
	if err := validatePasses(passes); err != nil {
		return nil, err
	}

	owner := make(map[string]int)
	groups := make([]PartitionGroup, 0, 2*len(passes))

	for _, pass := range passes {
		low := PartitionGroup{Pass: pass.Name, Dimension: pass.Dimension, Level: LevelLow}
		high := PartitionGroup{Pass: pass.Name, Dimension: pass.Dimension, Level: LevelHigh}
		var lowItems, highItems []ObservedItem

		for _, it := range items {
			n, ok := it.Counts[pass.Dimension]
			if !ok {
				continue
			}
			switch {
			case n < pass.LowBelow:
				lowItems = append(lowItems, it)
			case n > pass.HighAbove:
				highItems = append(highItems, it)
			}
		}

		for _, g := range []struct {
			group *PartitionGroup
			items []ObservedItem
		}{{&low, lowItems}, {&high, highItems}} {
			id := len(groups)
			for _, it := range g.items {
				if o, taken := owner[it.Word]; taken && o != id {
					g.group.Discarded++
					continue
				}
				owner[it.Word] = id
				g.group.Items = append(g.group.Items, it)
			}
			groups = append(groups, *g.group)
		}
	}

	return groups, nil
}

func validatePasses(passes []PartitionPass) error {
	var errs []domain.FieldError
	seen := make(map[string]bool, len(passes))
	for i, p := range passes {
		field := fmt.Sprintf("passes[%d]", i)
		switch {
		case p.Name == "" || p.Dimension == "":
			errs = append(errs, domain.FieldError{Field: field, Message: "name and dimension are required"})
		case seen[p.Name]:
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("duplicate pass name %q", p.Name)})
		case p.LowBelow > p.HighAbove+1:
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("low_below %d overlaps high_above %d", p.LowBelow, p.HighAbove)})
		}
		seen[p.Name] = true
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
