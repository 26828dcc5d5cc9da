package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Match     MatchConfig     `yaml:"match"`
	Partition PartitionConfig `yaml:"partition"`
	Output    OutputConfig    `yaml:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DatabaseConfig holds PostgreSQL connection settings for the run store.
// An empty DSN disables persistence.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether a run store is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.DSN != ""
}

// CorpusConfig holds input table locations, column names and cleaning policy.
// Column defaults follow the CELEX export, the Brysbaert norms and the
// stimulus sheet the study was built on. PronunciationPath optionally names
// a CMU Pronouncing Dictionary used for rows without a syllable count.
type CorpusConfig struct {
	ReferencePath      string `yaml:"reference_path"      env:"CORPUS_REFERENCE_PATH"`
	ReferenceDelimiter string `yaml:"reference_delimiter" env:"CORPUS_REFERENCE_DELIMITER" env-default:"\\"`
	FrequencyPath      string `yaml:"frequency_path"      env:"CORPUS_FREQUENCY_PATH"`
	ConcretenessPath   string `yaml:"concreteness_path"   env:"CORPUS_CONCRETENESS_PATH"`
	StimuliPath        string `yaml:"stimuli_path"        env:"CORPUS_STIMULI_PATH"`
	PronunciationPath  string `yaml:"pronunciation_path"  env:"CORPUS_PRONUNCIATION_PATH"`
	DedupScope         string `yaml:"dedup_scope"         env:"CORPUS_DEDUP_SCOPE"         env-default:"word"`

	Reference    ReferenceColumns    `yaml:"reference_columns"`
	Frequency    FrequencyColumns    `yaml:"frequency_columns"`
	Concreteness ConcretenessColumns `yaml:"concreteness_columns"`
	Stimuli      StimulusColumns     `yaml:"stimulus_columns"`
}

// ReferenceColumns names the reference lexical table headers.
type ReferenceColumns struct {
	Word      string `yaml:"word"      env:"CORPUS_REFERENCE_WORD_COLUMN"      env-default:"Word"`
	Class     string `yaml:"class"     env:"CORPUS_REFERENCE_CLASS_COLUMN"     env-default:"Class"`
	Syllables string `yaml:"syllables" env:"CORPUS_REFERENCE_SYLLABLES_COLUMN" env-default:"SylCnt"`
}

// FrequencyColumns names the frequency table headers.
type FrequencyColumns struct {
	Word      string `yaml:"word"      env:"CORPUS_FREQUENCY_WORD_COLUMN"  env-default:"Word"`
	Frequency string `yaml:"frequency" env:"CORPUS_FREQUENCY_VALUE_COLUMN" env-default:"SUBTLEX"`
}

// ConcretenessColumns names the concreteness table headers. DominantClass
// is optional; leave it empty to ignore dominant part-of-speech data.
type ConcretenessColumns struct {
	Word          string `yaml:"word"           env:"CORPUS_CONCRETENESS_WORD_COLUMN"  env-default:"Word"`
	Concreteness  string `yaml:"concreteness"   env:"CORPUS_CONCRETENESS_VALUE_COLUMN" env-default:"Conc.M"`
	DominantClass string `yaml:"dominant_class" env:"CORPUS_CONCRETENESS_DOMPOS_COLUMN" env-default:"Dom_Pos"`
}

// StimulusColumns names the critical-stimulus table headers. Rows whose
// ExcludeColumn equals ExcludeValue are dropped before resolution.
type StimulusColumns struct {
	Word          string `yaml:"word"           env:"CORPUS_STIMULI_WORD_COLUMN"      env-default:"Word"`
	Class         string `yaml:"class"          env:"CORPUS_STIMULI_CLASS_COLUMN"     env-default:"Class"`
	Source        string `yaml:"source"         env:"CORPUS_STIMULI_SOURCE_COLUMN"    env-default:"Source"`
	Condition     string `yaml:"condition"      env:"CORPUS_STIMULI_CONDITION_COLUMN" env-default:"Original Condition"`
	ExcludeColumn string `yaml:"exclude_column" env:"CORPUS_STIMULI_EXCLUDE_COLUMN"   env-default:"Ambiguity_Type"`
	ExcludeValue  string `yaml:"exclude_value"  env:"CORPUS_STIMULI_EXCLUDE_VALUE"    env-default:"Unsure"`
}

// MatchConfig holds matcher run parameters. NoConcreteness switches to the
// frequency/class/syllable-only mode. Seed 0 means "derive from the clock".
type MatchConfig struct {
	FrequencyTolerance    float64  `yaml:"frequency_tolerance"    env:"MATCH_FREQUENCY_TOLERANCE"    env-default:"0.1"`
	ConcretenessTolerance float64  `yaml:"concreteness_tolerance" env:"MATCH_CONCRETENESS_TOLERANCE" env-default:"1.0"`
	NoConcreteness        bool     `yaml:"no_concreteness"        env:"MATCH_NO_CONCRETENESS"`
	RequireDominantClass  bool     `yaml:"require_dominant_class" env:"MATCH_REQUIRE_DOMINANT_CLASS" env-default:"false"`
	Order                 string   `yaml:"order"                  env:"MATCH_ORDER"                  env-default:"input"`
	Seed                  uint64   `yaml:"seed"                   env:"MATCH_SEED"`
	FillerConditions      []string `yaml:"filler_conditions"      env:"MATCH_FILLER_CONDITIONS"      env-separator:","`
}

// PartitionConfig holds observation-count partitioning settings.
// Each raw pass is "name:dimension:low_below:high_above".
type PartitionConfig struct {
	ObservationsPath string   `yaml:"observations_path" env:"PARTITION_OBSERVATIONS_PATH"`
	WordColumn       string   `yaml:"word_column"       env:"PARTITION_WORD_COLUMN" env-default:"word"`
	KeyColumn        string   `yaml:"key_column"        env:"PARTITION_KEY_COLUMN"  env-default:"sentence"`
	PassesRaw        []string `yaml:"passes"            env:"PARTITION_PASSES"      env-separator:"," env-default:"perceptual:count_perceptual:10:17,action:count_action:12:20"`

	// Passes is parsed from PassesRaw during validation.
	Passes []PartitionPass `yaml:"-" env:"-"`
}

// UseConcreteness reports whether concreteness is part of the matching key.
func (m MatchConfig) UseConcreteness() bool {
	return !m.NoConcreteness
}

// PartitionPass is one parsed partitioning pass.
type PartitionPass struct {
	Name      string
	Dimension string
	LowBelow  int
	HighAbove int
}

// OutputConfig holds output locations.
type OutputConfig struct {
	ResultsPath   string `yaml:"results_path"   env:"OUTPUT_RESULTS_PATH"   env-default:"fillers.csv"`
	PartitionPath string `yaml:"partition_path" env:"OUTPUT_PARTITION_PATH" env-default:"partition.csv"`
}
