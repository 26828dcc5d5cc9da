// Package tabular reads delimited text tables by header name.
// It validates required columns up front so that loaders fail fast with a
// *domain.MalformedInputError instead of failing deep inside a parse loop.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

// Reader iterates the data rows of a table with a header line.
type Reader struct {
	table  string
	csv    *csv.Reader
	header []string
	index  map[string]int
	line   int
}

// NewReader reads the header line from r. table names the input in errors.
// An empty input yields a reader with no columns; Require then reports the
// first required column as missing.
func NewReader(table string, r io.Reader, delimiter rune) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1 // allow variable column count
	cr.LazyQuotes = true

	tr := &Reader{
		table: table,
		csv:   cr,
		index: make(map[string]int),
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return tr, nil
		}
		return nil, fmt.Errorf("%s: read header: %w", table, err)
	}
	tr.line = 1

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	tr.header = make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		tr.header[i] = h
		if _, dup := tr.index[h]; !dup {
			tr.index[h] = i
		}
	}

	return tr, nil
}

// Table returns the table name used in errors.
func (r *Reader) Table() string { return r.table }

// Header returns the trimmed header names in file order.
func (r *Reader) Header() []string { return r.header }

// Has reports whether the header contains col.
func (r *Reader) Has(col string) bool {
	_, ok := r.index[col]
	return ok
}

// Require returns a *domain.MalformedInputError for the first column in
// cols that the header lacks.
func (r *Reader) Require(cols ...string) error {
	for _, c := range cols {
		if !r.Has(c) {
			return &domain.MalformedInputError{Table: r.table, Column: c}
		}
	}
	return nil
}

// Next returns the next data row, or io.EOF after the last one.
// Blank lines are skipped by the underlying csv.Reader.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("%s: read row: %w", r.table, err)
	}
	r.line, _ = r.csv.FieldPos(0)
	return Row{fields: record, index: r.index, line: r.line}, nil
}

// Row is one data row addressed by column name.
type Row struct {
	fields []string
	index  map[string]int
	line   int
}

// Line returns the 1-based line number the row started on.
func (r Row) Line() int { return r.line }

// Get returns the trimmed value of col, or "" when the column is absent
// from the header or the row is short.
func (r Row) Get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// Values returns every column of the row keyed by header name, skipping
// the columns listed in except.
func (r Row) Values(header []string, except ...string) map[string]string {
	skip := make(map[string]bool, len(except))
	for _, e := range except {
		skip[e] = true
	}
	out := make(map[string]string, len(header))
	for _, h := range header {
		if h == "" || skip[h] {
			continue
		}
		out[h] = r.Get(h)
	}
	return out
}
