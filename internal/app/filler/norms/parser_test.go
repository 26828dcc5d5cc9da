package norms

import (
	"errors"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

var (
	brysbaertFrequency    = FrequencyColumns{Word: "Word", Frequency: "SUBTLEX"}
	brysbaertConcreteness = ConcretenessColumns{Word: "Word", Concreteness: "Conc.M", DominantClass: "Dom_Pos"}
)

// --- Frequency ---

func TestParseFrequency_Sample(t *testing.T) {
	result, err := ParseFrequency(testdataPath(t, "brysbaert_sample.csv"), brysbaertFrequency)
	if err != nil {
		t.Fatalf("ParseFrequency returned error: %v", err)
	}

	// 8 rows: "run" has NA frequency, one row has no word.
	if result.Stats.TotalRows != 8 || result.Stats.Missing != 2 || result.Stats.Parsed != 6 {
		t.Fatalf("Stats = %+v, want total 8, missing 2, parsed 6", result.Stats)
	}

	if result.Rows[0].Word != "shore" || math.Abs(result.Rows[0].Raw-111.2) > 1e-9 {
		t.Errorf("rows[0] = %+v, want shore/111.2", result.Rows[0])
	}

	last := result.Rows[len(result.Rows)-1]
	if last.Word != "zero" || last.Raw != 0 {
		t.Errorf("last row = %+v, want zero/0 (zero frequency is valid)", last)
	}
}

func TestParseFrequency_RejectsNegative(t *testing.T) {
	t.Parallel()

	result, err := parseFrequency(strings.NewReader("Word,SUBTLEX\nshore,-1\ndesk,NaN\nbank,3\n"), brysbaertFrequency)
	if err != nil {
		t.Fatalf("parseFrequency returned error: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0].Word != "bank" {
		t.Errorf("Rows = %+v, want only bank", result.Rows)
	}
	if result.Stats.Missing != 2 {
		t.Errorf("Missing = %d, want 2", result.Stats.Missing)
	}
}

func TestParseFrequency_MissingColumn(t *testing.T) {
	t.Parallel()

	_, err := parseFrequency(strings.NewReader("Word,Freq\nshore,1\n"), brysbaertFrequency)
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

// --- Concreteness ---

func TestParseConcreteness_Sample(t *testing.T) {
	result, err := ParseConcreteness(testdataPath(t, "brysbaert_sample.csv"), brysbaertConcreteness)
	if err != nil {
		t.Fatalf("ParseConcreteness returned error: %v", err)
	}

	// "idea" has NA concreteness, one row has no word.
	if result.Stats.Missing != 2 || result.Stats.Parsed != 6 {
		t.Fatalf("Stats = %+v, want missing 2, parsed 6", result.Stats)
	}

	byWord := make(map[string]ConcretenessRow, len(result.Rows))
	for _, r := range result.Rows {
		byWord[r.Word] = r
	}
	if r := byWord["shore"]; r.Concreteness != 4.5 || r.DominantClass != domain.ClassNoun {
		t.Errorf("shore = %+v, want 4.5/Noun", r)
	}
	if r := byWord["run"]; r.DominantClass != domain.ClassVerb {
		t.Errorf("run dominant class = %q, want Verb", r.DominantClass)
	}
	if _, ok := byWord["idea"]; ok {
		t.Error("idea should be skipped (NA concreteness)")
	}
}

func TestParseConcreteness_OptionalDominantClass(t *testing.T) {
	t.Parallel()

	result, err := parseConcreteness(strings.NewReader("Word,Conc.M\nshore,4.5\n"), brysbaertConcreteness)
	if err != nil {
		t.Fatalf("absent Dom_Pos column should not be an error: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0].DominantClass != "" {
		t.Errorf("Rows = %+v, want one row without dominant class", result.Rows)
	}
}

func TestParseConcreteness_MissingColumn(t *testing.T) {
	t.Parallel()

	_, err := parseConcreteness(strings.NewReader("Word,SUBTLEX\nshore,1\n"), brysbaertConcreteness)
	var mie *domain.MalformedInputError
	if !errors.As(err, &mie) || mie.Column != "Conc.M" {
		t.Fatalf("expected MalformedInputError for Conc.M, got %v", err)
	}
}

func TestParse_FileNotFound(t *testing.T) {
	t.Parallel()

	if _, err := ParseFrequency("/nonexistent/norms.csv", brysbaertFrequency); err == nil {
		t.Error("ParseFrequency should return error for missing file")
	}
	if _, err := ParseConcreteness("/nonexistent/norms.csv", brysbaertConcreteness); err == nil {
		t.Error("ParseConcreteness should return error for missing file")
	}
}
