// Package observations parses per-item norm observation counts, one row per
// word in context, used by the partition command.
package observations

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/heartmarshall/lexmatch/internal/app/filler/tabular"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

const tableName = "observations"

// Columns names the word column, the key column identifying the item
// instance, and one count column per dimension.
type Columns struct {
	Word       string
	Key        string
	Dimensions []string
}

// Row is one observed item. Counts lacks a dimension whose cell was empty
// or not an integer.
type Row struct {
	Word   string
	Key    string
	Counts map[string]int
	Line   int
}

// ParseResult holds parsed rows in file order.
type ParseResult struct {
	Rows  []Row
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows int
	Missing   int
	BadCounts int
	Parsed    int
}

// Parse reads the observation table at filePath.
func Parse(filePath string, cols Columns) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f, cols)
}

func parse(r io.Reader, cols Columns) (ParseResult, error) {
	tr, err := tabular.NewReader(tableName, r, ',')
	if err != nil {
		return ParseResult{}, err
	}
	required := append([]string{cols.Word, cols.Key}, cols.Dimensions...)
	if err := tr.Require(required...); err != nil {
		return ParseResult{}, err
	}

	var result ParseResult
	for {
		rec, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, err
		}
		result.Stats.TotalRows++

		word := domain.NormalizeWord(rec.Get(cols.Word))
		if word == "" {
			result.Stats.Missing++
			continue
		}

		counts := make(map[string]int, len(cols.Dimensions))
		for _, dim := range cols.Dimensions {
			n, ok := parseCount(rec.Get(dim))
			if !ok {
				result.Stats.BadCounts++
				continue
			}
			counts[dim] = n
		}

		result.Rows = append(result.Rows, Row{
			Word:   word,
			Key:    rec.Get(cols.Key),
			Counts: counts,
			Line:   rec.Line(),
		})
	}

	result.Stats.Parsed = len(result.Rows)
	return result, nil
}

// parseCount accepts integer counts, including the "12.0" form spreadsheet
// exports produce.
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
