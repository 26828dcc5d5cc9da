package filler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexmatch/internal/app/filler/celex"
	"github.com/heartmarshall/lexmatch/internal/app/filler/cmu"
	"github.com/heartmarshall/lexmatch/internal/app/filler/norms"
	"github.com/heartmarshall/lexmatch/internal/app/filler/stimuli"
	"github.com/heartmarshall/lexmatch/internal/corpus"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/matcher"
	"github.com/heartmarshall/lexmatch/internal/report"
	"github.com/heartmarshall/lexmatch/pkg/ctxutil"
)

const (
	phaseLoad    = "load"
	phasePrepare = "prepare"
	phaseMatch   = "match"
	phaseAssign  = "assign"
	phaseWrite   = "write"
	phasePersist = "persist"
)

// allPhases defines the canonical execution order.
var allPhases = []string{phaseLoad, phasePrepare, phaseMatch, phaseAssign, phaseWrite, phasePersist}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Rows     int
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Outcome is what a run produced. Run is empty after a dry run.
type Outcome struct {
	RunID      uuid.UUID
	Stats      corpus.Stats
	Run        matcher.Run
	Conditions map[string]int
}

// Pipeline runs the phases of one matching run. Any phase error is fatal:
// later phases do not run and nothing is persisted.
type Pipeline struct {
	log     *slog.Logger
	store   RunStore
	cfg     Config
	results map[string]PhaseResult
	now     func() time.Time

	input    corpus.Input
	prepared corpus.Prepared
	rng      *rand.Rand
	outcome  Outcome
}

// NewPipeline creates a new Pipeline. store may be nil to skip persistence.
func NewPipeline(log *slog.Logger, store RunStore, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		store:   store,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
		now:     time.Now,
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Run executes every phase in order.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	p.outcome = Outcome{RunID: uuid.New()}
	ctx = ctxutil.WithRunID(ctx, p.outcome.RunID)
	log := p.logger(ctx)

	seed := p.cfg.Match.Seed
	if seed == 0 {
		seed = uint64(p.now().UnixNano())
	}
	p.cfg.Match.Seed = seed
	p.rng = matcher.NewRand(seed)

	for _, phase := range allPhases {
		if p.cfg.DryRun && phase == phaseMatch {
			log.Info("dry run: stopping after preparation")
			break
		}
		if err := ctx.Err(); err != nil {
			return p.outcome, err
		}

		start := time.Now()
		log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case phaseLoad:
			result = p.runLoad(ctx)
		case phasePrepare:
			result = p.runPrepare(ctx)
		case phaseMatch:
			result = p.runMatch(ctx)
		case phaseAssign:
			result = p.runAssign(ctx)
		case phaseWrite:
			result = p.runWrite(ctx)
		case phasePersist:
			result = p.runPersist(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			log.Error("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return p.outcome, fmt.Errorf("%s: %w", phase, result.Err)
		}
		log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("rows", result.Rows),
			slog.Bool("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	log.Info("pipeline completed",
		slog.Int("matched", p.outcome.Run.Summary.Matched),
		slog.Int("unmatched", p.outcome.Run.Summary.Unmatched),
		slog.Uint64("seed", seed),
	)
	return p.outcome, nil
}

func (p *Pipeline) logger(ctx context.Context) *slog.Logger {
	if id, ok := ctxutil.RunIDFromCtx(ctx); ok {
		return p.log.With(slog.String("run_id", id.String()))
	}
	return p.log
}

// runLoad parses every input table. A missing required column aborts here.
func (p *Pipeline) runLoad(ctx context.Context) PhaseResult {
	c := p.cfg.Corpus
	useConc := p.cfg.Match.UseConcreteness()
	if err := c.RequireMatchInputs(useConc); err != nil {
		return PhaseResult{Err: err}
	}
	log := p.logger(ctx)

	ref, err := celex.Parse(c.ReferencePath, []rune(c.ReferenceDelimiter)[0], celex.Columns{
		Word:      c.Reference.Word,
		Class:     c.Reference.Class,
		Syllables: c.Reference.Syllables,
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse reference: %w", err)}
	}
	log.Info("reference parsed",
		slog.Int("rows", ref.Stats.Parsed),
		slog.Int("missing", ref.Stats.Missing),
		slog.Int("no_syllables", ref.Stats.NoSyllables),
	)

	var pron corpus.SyllableSource
	if c.PronunciationPath != "" {
		dict, err := cmu.Parse(c.PronunciationPath)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("parse pronunciations: %w", err)}
		}
		log.Info("pronunciations parsed", slog.Int("words", dict.Stats.UniqueWords))
		pron = dict
	}

	freq, err := norms.ParseFrequency(c.FrequencyPath, norms.FrequencyColumns{
		Word:      c.Frequency.Word,
		Frequency: c.Frequency.Frequency,
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse frequency: %w", err)}
	}
	log.Info("frequency parsed", slog.Int("rows", freq.Stats.Parsed), slog.Int("missing", freq.Stats.Missing))

	var concRows []norms.ConcretenessRow
	if c.ConcretenessPath != "" && (useConc || p.cfg.Match.RequireDominantClass) {
		conc, err := norms.ParseConcreteness(c.ConcretenessPath, norms.ConcretenessColumns{
			Word:          c.Concreteness.Word,
			Concreteness:  c.Concreteness.Concreteness,
			DominantClass: c.Concreteness.DominantClass,
		})
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("parse concreteness: %w", err)}
		}
		log.Info("concreteness parsed", slog.Int("rows", conc.Stats.Parsed), slog.Int("missing", conc.Stats.Missing))
		concRows = conc.Rows
	}

	stim, err := stimuli.Parse(c.StimuliPath, stimuli.Columns{
		Word:          c.Stimuli.Word,
		Class:         c.Stimuli.Class,
		Source:        c.Stimuli.Source,
		Condition:     c.Stimuli.Condition,
		ExcludeColumn: c.Stimuli.ExcludeColumn,
		ExcludeValue:  c.Stimuli.ExcludeValue,
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse stimuli: %w", err)}
	}
	log.Info("stimuli parsed",
		slog.Int("rows", stim.Stats.Parsed),
		slog.Int("excluded", stim.Stats.Excluded),
		slog.Int("missing", stim.Stats.Missing),
	)

	p.input = corpus.Input{
		Reference:    ref.Rows,
		Frequency:    freq.Rows,
		Concreteness: concRows,
		Stimuli:      stim.Rows,

		Pronunciations: pron,
	}
	return PhaseResult{Rows: len(ref.Rows) + len(freq.Rows) + len(concRows) + len(stim.Rows)}
}

func (p *Pipeline) runPrepare(ctx context.Context) PhaseResult {
	prepared, err := corpus.Prepare(p.input, corpus.Options{
		DedupScope: domain.DedupScope(p.cfg.Corpus.DedupScope),
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	p.prepared = prepared
	p.outcome.Stats = prepared.Stats

	s := prepared.Stats
	p.logger(ctx).Info("corpus prepared",
		slog.Int("reference_rows", s.ReferenceRows),
		slog.Int("no_syllables", s.NoSyllables),
		slog.Int("syllables_filled", s.SyllablesFilled),
		slog.Int("multi_token", s.MultiToken),
		slog.Int("too_short", s.TooShort),
		slog.Int("proper_noun", s.ProperNoun),
		slog.Int("duplicates", s.Duplicates),
		slog.Int("no_frequency", s.NoFrequency),
		slog.Int("target_overlap", s.TargetOverlap),
		slog.Int("pool", s.PoolSize),
		slog.Int("targets", s.Targets),
		slog.Int("unresolved", s.Unresolved),
	)
	return PhaseResult{Rows: s.PoolSize}
}

func (p *Pipeline) runMatch(_ context.Context) PhaseResult {
	run := matcher.Match(p.prepared.Targets, p.prepared.Pool, matcher.Options{
		Tolerances:           p.cfg.tolerances(),
		Rand:                 p.rng,
		Seed:                 p.cfg.Match.Seed,
		Order:                domain.OrderPolicy(p.cfg.Match.Order),
		RequireDominantClass: p.cfg.Match.RequireDominantClass,
	})
	p.outcome.Run = run
	return PhaseResult{Rows: run.Summary.Matched}
}

func (p *Pipeline) runAssign(ctx context.Context) PhaseResult {
	labels := p.cfg.Match.FillerConditions
	if len(labels) == 0 {
		return PhaseResult{Skipped: true}
	}
	counts := matcher.AssignConditions(p.outcome.Run.Results, labels, p.rng)
	p.outcome.Conditions = counts

	attrs := make([]any, 0, len(counts))
	for _, l := range labels {
		attrs = append(attrs, slog.Int(l, counts[l]))
	}
	p.logger(ctx).Info("conditions assigned", attrs...)
	return PhaseResult{Rows: p.outcome.Run.Summary.Matched}
}

func (p *Pipeline) runWrite(_ context.Context) PhaseResult {
	if p.cfg.ResultsPath == "" {
		return PhaseResult{Skipped: true}
	}
	f, err := os.Create(p.cfg.ResultsPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("create results file: %w", err)}
	}
	if err := report.WriteResults(f, p.outcome.Run.Results, p.cfg.Match.UseConcreteness()); err != nil {
		_ = f.Close()
		return PhaseResult{Err: fmt.Errorf("write results: %w", err)}
	}
	if err := f.Close(); err != nil {
		return PhaseResult{Err: fmt.Errorf("close results file: %w", err)}
	}
	return PhaseResult{Rows: len(p.outcome.Run.Results)}
}

func (p *Pipeline) runPersist(ctx context.Context) PhaseResult {
	if p.store == nil {
		return PhaseResult{Skipped: true}
	}
	run := domain.MatchRun{
		ID:        p.outcome.RunID,
		CreatedAt: p.now().UTC().Truncate(time.Microsecond),
		Summary:   p.outcome.Run.Summary,
	}
	if err := p.store.Save(ctx, run, p.outcome.Run.Results); err != nil {
		return PhaseResult{Err: fmt.Errorf("save run: %w", err)}
	}
	return PhaseResult{Rows: len(p.outcome.Run.Results)}
}
