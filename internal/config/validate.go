package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !domain.DedupScope(c.Corpus.DedupScope).IsValid() {
		return fmt.Errorf("corpus.dedup_scope: unknown scope %q (want word or word_class)", c.Corpus.DedupScope)
	}
	if delim := []rune(c.Corpus.ReferenceDelimiter); len(delim) != 1 {
		return fmt.Errorf("corpus.reference_delimiter must be a single character (got %q)", c.Corpus.ReferenceDelimiter)
	}

	if err := c.Match.validate(); err != nil {
		return fmt.Errorf("match: %w", err)
	}

	passes, err := ParsePartitionPasses(c.Partition.PassesRaw)
	if err != nil {
		return fmt.Errorf("partition.passes: %w", err)
	}
	c.Partition.Passes = passes

	return nil
}

func (m *MatchConfig) validate() error {
	if m.FrequencyTolerance <= 0 {
		return fmt.Errorf("frequency_tolerance must be > 0 (got %v)", m.FrequencyTolerance)
	}
	if m.UseConcreteness() && m.ConcretenessTolerance <= 0 {
		return fmt.Errorf("concreteness_tolerance must be > 0 (got %v)", m.ConcretenessTolerance)
	}
	if !domain.OrderPolicy(m.Order).IsValid() {
		return fmt.Errorf("order: unknown policy %q (want input or scarcity)", m.Order)
	}
	for i, label := range m.FillerConditions {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("filler_conditions[%d] is empty", i)
		}
	}
	return nil
}

// RequireMatchInputs reports the first input path the match command needs
// but is not configured.
func (c CorpusConfig) RequireMatchInputs(useConcreteness bool) error {
	required := []struct {
		name, path string
	}{
		{"corpus.reference_path", c.ReferencePath},
		{"corpus.frequency_path", c.FrequencyPath},
		{"corpus.stimuli_path", c.StimuliPath},
	}
	if useConcreteness {
		required = append(required, struct{ name, path string }{"corpus.concreteness_path", c.ConcretenessPath})
	}
	for _, r := range required {
		if r.path == "" {
			return domain.NewValidationError(r.name, "path not configured")
		}
	}
	return nil
}

// ParsePartitionPasses parses "name:dimension:low_below:high_above" specs.
// An empty slice returns nil. The low and high groups of a pass must be
// disjoint: low_below <= high_above + 1.
func ParsePartitionPasses(raw []string) ([]PartitionPass, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	passes := make([]PartitionPass, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, spec := range raw {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		parts := strings.Split(spec, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid pass %q: want name:dimension:low_below:high_above", spec)
		}
		name := strings.TrimSpace(parts[0])
		dim := strings.TrimSpace(parts[1])
		if name == "" || dim == "" {
			return nil, fmt.Errorf("invalid pass %q: name and dimension are required", spec)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate pass name %q", name)
		}
		seen[name] = true

		low, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid pass %q: low_below: %w", spec, err)
		}
		high, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil {
			return nil, fmt.Errorf("invalid pass %q: high_above: %w", spec, err)
		}
		if low > high+1 {
			return nil, fmt.Errorf("invalid pass %q: low_below %d overlaps high_above %d", spec, low, high)
		}

		passes = append(passes, PartitionPass{Name: name, Dimension: dim, LowBelow: low, HighAbove: high})
	}

	return passes, nil
}
