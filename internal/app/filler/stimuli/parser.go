// Package stimuli parses the critical-stimulus table. Only the word and
// class columns are required; sentence and study columns are carried
// through untouched in Row.Extra.
package stimuli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/lexmatch/internal/app/filler/tabular"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

const tableName = "stimuli"

// Columns names the headers the parser reads. Source, Condition and
// ExcludeColumn are optional.
type Columns struct {
	Word          string
	Class         string
	Source        string
	Condition     string
	ExcludeColumn string
	ExcludeValue  string
}

// Row is one stimulus row.
type Row struct {
	Word      string
	Class     domain.GrammaticalClass
	Source    string
	Condition string
	Extra     map[string]string
	Line      int
}

// ParseResult holds parsed stimulus rows in file order.
type ParseResult struct {
	Rows  []Row
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalRows int
	Excluded  int
	Missing   int
	Parsed    int
}

// Parse reads the stimulus table at filePath.
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
	if err := tr.Require(cols.Word, cols.Class); err != nil {
		return ParseResult{}, err
	}
	exclude := cols.ExcludeColumn != "" && tr.Has(cols.ExcludeColumn)
	header := tr.Header()

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

		if exclude && rec.Get(cols.ExcludeColumn) == cols.ExcludeValue {
			result.Stats.Excluded++
			continue
		}

		word := domain.NormalizeWord(rec.Get(cols.Word))
		class := domain.ParseGrammaticalClass(rec.Get(cols.Class))
		if word == "" || class == "" {
			result.Stats.Missing++
			continue
		}

		result.Rows = append(result.Rows, Row{
			Word:      word,
			Class:     class,
			Source:    rec.Get(cols.Source),
			Condition: rec.Get(cols.Condition),
			Extra:     rec.Values(header, cols.Word, cols.Class, cols.Source, cols.Condition),
			Line:      rec.Line(),
		})
	}

	result.Stats.Parsed = len(result.Rows)
	return result, nil
}
