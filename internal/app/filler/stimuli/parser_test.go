package stimuli

import (
	"errors"
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

var studyColumns = Columns{
	Word:          "Word",
	Class:         "Class",
	Source:        "Source",
	Condition:     "Original Condition",
	ExcludeColumn: "Ambiguity_Type",
	ExcludeValue:  "Unsure",
}

func TestParse_Sample(t *testing.T) {
	result, err := Parse(testdataPath(t, "stimuli_sample.csv"), studyColumns)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if result.Stats.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", result.Stats.TotalRows)
	}
	if result.Stats.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1 (cast is Unsure)", result.Stats.Excluded)
	}
	if result.Stats.Missing != 1 {
		t.Errorf("Missing = %d, want 1 (row without word)", result.Stats.Missing)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Rows))
	}

	bank := result.Rows[0]
	if bank.Word != "bank" || bank.Class != domain.ClassNoun {
		t.Errorf("bank = %+v, want bank/Noun", bank)
	}
	if bank.Source != "Klepousniotou" || bank.Condition != "Homonymy" {
		t.Errorf("bank metadata = (%q, %q)", bank.Source, bank.Condition)
	}
	if bank.Extra["M1_a"] != "He sat on the bank, fishing." {
		t.Errorf("quoted sentence not preserved: %q", bank.Extra["M1_a"])
	}
	if _, ok := bank.Extra["Word"]; ok {
		t.Error("Extra should not repeat the word column")
	}
	if bank.Extra["Ambiguity_Type"] != "Homonymy" {
		t.Errorf("Extra[Ambiguity_Type] = %q", bank.Extra["Ambiguity_Type"])
	}

	if result.Rows[2].Word != "file" || result.Rows[2].Class != domain.ClassVerb {
		t.Errorf("rows[2] = %+v, want file/Verb", result.Rows[2])
	}
}

func TestParse_NoExclusionColumn(t *testing.T) {
	t.Parallel()

	result, err := parse(strings.NewReader("Word,Class\nbank,N\ncast,V\n"), studyColumns)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(result.Rows) != 2 || result.Stats.Excluded != 0 {
		t.Errorf("Rows = %d, Excluded = %d, want 2/0", len(result.Rows), result.Stats.Excluded)
	}
	if result.Rows[0].Source != "" || result.Rows[0].Condition != "" {
		t.Error("absent optional columns should read as empty")
	}
}

func TestParse_MissingClassColumn(t *testing.T) {
	t.Parallel()

	_, err := parse(strings.NewReader("Word,Source\nbank,Rodd\n"), studyColumns)
	var mie *domain.MalformedInputError
	if !errors.As(err, &mie) || mie.Column != "Class" || mie.Table != "stimuli" {
		t.Fatalf("expected MalformedInputError for stimuli/Class, got %v", err)
	}
}
