package filler

import (
	"github.com/heartmarshall/lexmatch/internal/config"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

// Config holds the settings of one matching run.
type Config struct {
	Corpus      config.CorpusConfig
	Match       config.MatchConfig
	ResultsPath string
	// DryRun stops after preparation.
	DryRun bool
}

func (c Config) tolerances() domain.Tolerances {
	return domain.Tolerances{
		Frequency:       c.Match.FrequencyTolerance,
		Concreteness:    c.Match.ConcretenessTolerance,
		UseConcreteness: c.Match.UseConcreteness(),
	}
}
