// Package norms parses word-norm CSV tables: subtitle frequency counts and
// concreteness ratings (e.g. the Brysbaert norms). The two tables may be
// the same file read with different columns.
// Pure function: file path in, rows out. No database dependencies.
package norms

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/heartmarshall/lexmatch/internal/app/filler/tabular"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

// FrequencyColumns names the frequency table headers.
type FrequencyColumns struct {
	Word      string
	Frequency string
}

// ConcretenessColumns names the concreteness table headers.
// DominantClass is optional: an empty name or an absent header is ignored.
type ConcretenessColumns struct {
	Word          string
	Concreteness  string
	DominantClass string
}

// FrequencyRow is one word with its raw corpus frequency.
type FrequencyRow struct {
	Word string
	Raw  float64
}

// ConcretenessRow is one word with its mean concreteness rating.
type ConcretenessRow struct {
	Word          string
	Concreteness  float64
	DominantClass domain.GrammaticalClass
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows int
	Missing   int
	Parsed    int
}

// FrequencyResult holds parsed frequency rows in file order.
type FrequencyResult struct {
	Rows  []FrequencyRow
	Stats Stats
}

// ConcretenessResult holds parsed concreteness rows in file order.
type ConcretenessResult struct {
	Rows  []ConcretenessRow
	Stats Stats
}

// ParseFrequency reads a frequency table. Rows with an empty word or a
// missing, non-numeric or negative frequency are counted as Missing.
func ParseFrequency(filePath string, cols FrequencyColumns) (FrequencyResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return FrequencyResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parseFrequency(f, cols)
}

func parseFrequency(r io.Reader, cols FrequencyColumns) (FrequencyResult, error) {
	tr, err := tabular.NewReader("frequency", r, ',')
	if err != nil {
		return FrequencyResult{}, err
	}
	if err := tr.Require(cols.Word, cols.Frequency); err != nil {
		return FrequencyResult{}, err
	}

	var result FrequencyResult
	for {
		rec, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return FrequencyResult{}, err
		}
		result.Stats.TotalRows++

		word := domain.NormalizeWord(rec.Get(cols.Word))
		raw, ok := parseNumber(rec.Get(cols.Frequency))
		if word == "" || !ok || raw < 0 {
			result.Stats.Missing++
			continue
		}

		result.Rows = append(result.Rows, FrequencyRow{Word: word, Raw: raw})
	}

	result.Stats.Parsed = len(result.Rows)
	return result, nil
}

// ParseConcreteness reads a concreteness table.
func ParseConcreteness(filePath string, cols ConcretenessColumns) (ConcretenessResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ConcretenessResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parseConcreteness(f, cols)
}

func parseConcreteness(r io.Reader, cols ConcretenessColumns) (ConcretenessResult, error) {
	tr, err := tabular.NewReader("concreteness", r, ',')
	if err != nil {
		return ConcretenessResult{}, err
	}
	if err := tr.Require(cols.Word, cols.Concreteness); err != nil {
		return ConcretenessResult{}, err
	}
	withDominant := cols.DominantClass != "" && tr.Has(cols.DominantClass)

	var result ConcretenessResult
	for {
		rec, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ConcretenessResult{}, err
		}
		result.Stats.TotalRows++

		word := domain.NormalizeWord(rec.Get(cols.Word))
		conc, ok := parseNumber(rec.Get(cols.Concreteness))
		if word == "" || !ok {
			result.Stats.Missing++
			continue
		}

		row := ConcretenessRow{Word: word, Concreteness: conc}
		if withDominant {
			row.DominantClass = domain.ParseGrammaticalClass(rec.Get(cols.DominantClass))
		}
		result.Rows = append(result.Rows, row)
	}

	result.Stats.Parsed = len(result.Rows)
	return result, nil
}

// parseNumber parses a finite float. "NA", "NaN" and "" are missing.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
