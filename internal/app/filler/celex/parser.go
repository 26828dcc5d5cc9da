// Package celex parses the reference lexical table (a CELEX-style export)
// into typed rows. Pure function: file path in, rows out. No cleaning
// policy beyond dropping rows without a word or class; syllable fallback,
// word filters and deduplication belong to the corpus preparer.
package celex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/heartmarshall/lexmatch/internal/app/filler/tabular"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

const tableName = "reference"

// Columns names the headers the parser reads.
type Columns struct {
	Word      string
	Class     string
	Syllables string
}

// DefaultColumns matches the CELEX export used by the study.
var DefaultColumns = Columns{Word: "Word", Class: "Class", Syllables: "SylCnt"}

// Row is one reference row with a word and a class. SyllableCount is 0
// when the cell is empty or not a positive integer.
type Row struct {
	Word          string
	Class         domain.GrammaticalClass
	SyllableCount int
	Line          int
}

// ParseResult holds the parsed rows in file order.
type ParseResult struct {
	Rows  []Row
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows   int
	Missing     int
	NoSyllables int
	Parsed      int
}

// Parse reads the reference table at filePath.
func Parse(filePath string, delimiter rune, cols Columns) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f, delimiter, cols)
}

func parse(r io.Reader, delimiter rune, cols Columns) (ParseResult, error) {
	tr, err := tabular.NewReader(tableName, r, delimiter)
	if err != nil {
		return ParseResult{}, err
	}
	if err := tr.Require(cols.Word, cols.Class, cols.Syllables); err != nil {
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

		row, ok := toRow(rec, cols)
		if !ok {
			result.Stats.Missing++
			continue
		}
		if row.SyllableCount == 0 {
			result.Stats.NoSyllables++
		}
		result.Rows = append(result.Rows, row)
	}

	result.Stats.Parsed = len(result.Rows)
	return result, nil
}

// toRow converts a record, reporting false when the word or class is empty.
func toRow(rec tabular.Row, cols Columns) (Row, bool) {
	word := domain.NormalizeWord(rec.Get(cols.Word))
	class := domain.ParseGrammaticalClass(rec.Get(cols.Class))
	if word == "" || class == "" {
		return Row{}, false
	}

	syl, err := strconv.Atoi(rec.Get(cols.Syllables))
	if err != nil || syl < 0 {
		syl = 0
	}

	return Row{Word: word, Class: class, SyllableCount: syl, Line: rec.Line()}, true
}
