package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
log:
  level: "debug"
  format: "json"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 2

corpus:
  reference_path: "data/celex_all.csv"
  frequency_path: "data/brysbaert_norms.csv"
  concreteness_path: "data/brysbaert_norms.csv"
  stimuli_path: "data/stimuli.csv"
  dedup_scope: "word_class"
  stimulus_columns:
    exclude_value: "Skip"

match:
  frequency_tolerance: 0.2
  concreteness_tolerance: 0.5
  order: "scarcity"
  seed: 42
  filler_conditions: ["NN", "NS", "SN"]

partition:
  observations_path: "data/norms.csv"
  passes:
    - "perceptual:count_perceptual:10:17"

output:
  results_path: "out/fillers.csv"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Database.MaxConns != 2 {
		t.Errorf("Database.MaxConns = %d, want 2", cfg.Database.MaxConns)
	}
	if !cfg.Database.Enabled() {
		t.Error("Database.Enabled() = false, want true")
	}
	if cfg.Corpus.DedupScope != "word_class" {
		t.Errorf("Corpus.DedupScope = %q, want word_class", cfg.Corpus.DedupScope)
	}
	if cfg.Corpus.Stimuli.ExcludeValue != "Skip" {
		t.Errorf("Corpus.Stimuli.ExcludeValue = %q, want Skip", cfg.Corpus.Stimuli.ExcludeValue)
	}
	if cfg.Match.FrequencyTolerance != 0.2 {
		t.Errorf("Match.FrequencyTolerance = %v, want 0.2", cfg.Match.FrequencyTolerance)
	}
	if cfg.Match.Order != "scarcity" {
		t.Errorf("Match.Order = %q, want scarcity", cfg.Match.Order)
	}
	if cfg.Match.Seed != 42 {
		t.Errorf("Match.Seed = %d, want 42", cfg.Match.Seed)
	}
	if got := strings.Join(cfg.Match.FillerConditions, ","); got != "NN,NS,SN" {
		t.Errorf("Match.FillerConditions = %q, want NN,NS,SN", got)
	}
	if len(cfg.Partition.Passes) != 1 || cfg.Partition.Passes[0].HighAbove != 17 {
		t.Errorf("Partition.Passes = %+v, want one pass with high_above 17", cfg.Partition.Passes)
	}
	if cfg.Output.ResultsPath != "out/fillers.csv" {
		t.Errorf("Output.ResultsPath = %q", cfg.Output.ResultsPath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "log:\n  level: info\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format default = %q, want text", cfg.Log.Format)
	}
	if cfg.Database.Enabled() {
		t.Error("Database should be disabled without a DSN")
	}
	if cfg.Database.MaxConnLifetime != time.Hour {
		t.Errorf("Database.MaxConnLifetime = %v, want 1h", cfg.Database.MaxConnLifetime)
	}
	if cfg.Corpus.ReferenceDelimiter != `\` {
		t.Errorf("Corpus.ReferenceDelimiter = %q, want backslash", cfg.Corpus.ReferenceDelimiter)
	}
	if cfg.Corpus.DedupScope != "word" {
		t.Errorf("Corpus.DedupScope = %q, want word", cfg.Corpus.DedupScope)
	}
	if cfg.Corpus.Reference.Syllables != "SylCnt" {
		t.Errorf("Corpus.Reference.Syllables = %q, want SylCnt", cfg.Corpus.Reference.Syllables)
	}
	if cfg.Corpus.Frequency.Frequency != "SUBTLEX" {
		t.Errorf("Corpus.Frequency.Frequency = %q, want SUBTLEX", cfg.Corpus.Frequency.Frequency)
	}
	if cfg.Corpus.Concreteness.Concreteness != "Conc.M" {
		t.Errorf("Corpus.Concreteness.Concreteness = %q, want Conc.M", cfg.Corpus.Concreteness.Concreteness)
	}
	if cfg.Corpus.Stimuli.Condition != "Original Condition" {
		t.Errorf("Corpus.Stimuli.Condition = %q", cfg.Corpus.Stimuli.Condition)
	}
	if cfg.Match.FrequencyTolerance != 0.1 || cfg.Match.ConcretenessTolerance != 1.0 {
		t.Errorf("Match tolerances = (%v, %v), want (0.1, 1.0)", cfg.Match.FrequencyTolerance, cfg.Match.ConcretenessTolerance)
	}
	if !cfg.Match.UseConcreteness() {
		t.Error("concreteness matching should be on by default")
	}
	if cfg.Match.Order != "input" {
		t.Errorf("Match.Order = %q, want input", cfg.Match.Order)
	}
	if len(cfg.Partition.Passes) != 2 {
		t.Fatalf("Partition.Passes = %+v, want 2 default passes", cfg.Partition.Passes)
	}
	if cfg.Partition.Passes[1] != (PartitionPass{Name: "action", Dimension: "count_action", LowBelow: 12, HighAbove: 20}) {
		t.Errorf("Partition.Passes[1] = %+v", cfg.Partition.Passes[1])
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("MATCH_FREQUENCY_TOLERANCE", "0.3")
	t.Setenv("MATCH_NO_CONCRETENESS", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Match.FrequencyTolerance != 0.3 {
		t.Errorf("Match.FrequencyTolerance = %v, want 0.3 (env override)", cfg.Match.FrequencyTolerance)
	}
	if cfg.Match.UseConcreteness() {
		t.Error("MATCH_NO_CONCRETENESS should disable concreteness matching")
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Match.Seed != 42 {
		t.Errorf("Match.Seed = %d, want 42", cfg.Match.Seed)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad dedup scope", "corpus:\n  dedup_scope: lemma\n", "dedup_scope"},
		{"bad delimiter", "corpus:\n  reference_delimiter: \"ab\"\n", "reference_delimiter"},
		{"negative frequency tolerance", "match:\n  frequency_tolerance: -0.1\n", "frequency_tolerance"},
		{"negative concreteness tolerance", "match:\n  concreteness_tolerance: -1\n", "concreteness_tolerance"},
		{"bad order", "match:\n  order: random\n", "order"},
		{"bad pass", "partition:\n  passes: [\"perceptual:count:10\"]\n", "partition.passes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeYAML(t, t.TempDir(), tt.yaml)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParsePartitionPasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     []string
		want    []PartitionPass
		wantErr bool
	}{
		{name: "empty", raw: nil, want: nil},
		{
			name: "two passes",
			raw:  []string{"perceptual:count_perceptual:10:17", " action : count_action : 12 : 20 "},
			want: []PartitionPass{
				{Name: "perceptual", Dimension: "count_perceptual", LowBelow: 10, HighAbove: 17},
				{Name: "action", Dimension: "count_action", LowBelow: 12, HighAbove: 20},
			},
		},
		{name: "adjacent bounds allowed", raw: []string{"p:c:11:10"}, want: []PartitionPass{{Name: "p", Dimension: "c", LowBelow: 11, HighAbove: 10}}},
		{name: "overlapping bounds", raw: []string{"p:c:20:10"}, wantErr: true},
		{name: "missing field", raw: []string{"p:c:10"}, wantErr: true},
		{name: "non-numeric", raw: []string{"p:c:ten:17"}, wantErr: true},
		{name: "empty name", raw: []string{":c:10:17"}, wantErr: true},
		{name: "duplicate name", raw: []string{"p:c:10:17", "p:d:10:17"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePartitionPasses(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePartitionPasses(%v) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePartitionPasses(%v) error: %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d passes, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pass[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCorpusConfig_RequireMatchInputs(t *testing.T) {
	t.Parallel()

	full := CorpusConfig{
		ReferencePath:    "r",
		FrequencyPath:    "f",
		ConcretenessPath: "c",
		StimuliPath:      "s",
	}
	if err := full.RequireMatchInputs(true); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noConc := full
	noConc.ConcretenessPath = ""
	if err := noConc.RequireMatchInputs(false); err != nil {
		t.Errorf("concreteness path should not be required: %v", err)
	}
	if err := noConc.RequireMatchInputs(true); err == nil || !strings.Contains(err.Error(), "concreteness_path") {
		t.Errorf("expected concreteness_path error, got %v", err)
	}
}
