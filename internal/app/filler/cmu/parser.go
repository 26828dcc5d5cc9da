// Package cmu reads syllable counts from a CMU Pronouncing Dictionary file.
// Pure function: file path in, word-to-count map out.
package cmu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// ParseResult holds the syllable count of each word's primary
// pronunciation, keyed by lower-cased word.
type ParseResult struct {
	Syllables map[string]int
	Stats     Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

// Lookup returns the syllable count of word, matching case-insensitively.
func (r ParseResult) Lookup(word string) (int, bool) {
	n, ok := r.Syllables[strings.ToLower(word)]
	return n, ok
}

// Parse reads a CMU dict file.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (ParseResult, error) {
	result := ParseResult{
		Syllables: make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		word, variant, syllables, err := parseLine(line)
		if errors.Is(err, errSkipLine) {
			if strings.HasPrefix(line, ";;;") {
				result.Stats.CommentLines++
			}
			continue
		}
		result.Stats.ParsedLines++

		// Variants repeat the headword; the primary pronunciation wins.
		if _, seen := result.Syllables[word]; seen && variant > 0 {
			continue
		}
		result.Syllables[word] = syllables
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	result.Stats.UniqueWords = len(result.Syllables)
	return result, nil
}

// countSyllables counts vowel phonemes. Every ARPAbet vowel carries a
// trailing stress marker (0, 1, 2) and no consonant does.
func countSyllables(phonemes []string) int {
	n := 0
	for _, p := range phonemes {
		if p == "" {
			continue
		}
		switch p[len(p)-1] {
		case '0', '1', '2':
			n++
		}
	}
	return n
}

// parseLine parses a single line from a CMU dict file.
// Returns the lower-cased word, its variant index and syllable count, or
// errSkipLine for comments, empty lines and pronunciations with no vowel.
func parseLine(line string) (string, int, int, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", 0, 0, errSkipLine
	}

	// CMU format: WORD  PHONEME1 PHONEME2 ... (two spaces between word and phonemes).
	parts := strings.SplitN(line, "  ", 2)
	if len(parts) != 2 {
		return "", 0, 0, errSkipLine
	}

	rawWord := strings.TrimSpace(parts[0])
	phonemes := strings.Fields(parts[1])
	if rawWord == "" || len(phonemes) == 0 {
		return "", 0, 0, errSkipLine
	}

	syllables := countSyllables(phonemes)
	if syllables == 0 {
		return "", 0, 0, errSkipLine
	}

	word, variant := parseWordAndVariant(rawWord)
	return word, variant, syllables, nil
}

// parseWordAndVariant splits a raw CMU word like "HOUSE(2)" into
// the lower-cased word and variant index.
// Primary pronunciation has variant index 0, "(2)" maps to 1, "(3)" to 2, etc.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx == -1 {
		return strings.ToLower(raw), 0
	}

	end := strings.IndexByte(raw[idx:], ')')
	if end == -1 {
		return strings.ToLower(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : idx+end])
	if err != nil {
		return strings.ToLower(raw), 0
	}

	return strings.ToLower(raw[:idx]), n - 1
}
