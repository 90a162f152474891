// Package metrics holds the counters reported for a patch run.
package metrics

// BlockOutcome classifies what happened to one object-schema block.
type BlockOutcome int

const (
	// OutcomePatched: a reject-unknown-keys line was inserted.
	OutcomePatched BlockOutcome = iota
	// OutcomeCompliant: the block already declares additionalProperties.
	OutcomeCompliant
	// OutcomeNoProperties: the block closes without a properties declaration.
	OutcomeNoProperties
	// OutcomeUnterminated: the lookahead window ran out before the block closed.
	OutcomeUnterminated
)

func (o BlockOutcome) String() string {
	switch o {
	case OutcomePatched:
		return "patched"
	case OutcomeCompliant:
		return "compliant"
	case OutcomeNoProperties:
		return "no_properties"
	case OutcomeUnterminated:
		return "unterminated"
	default:
		return "unknown"
	}
}

// BlockStats counts block outcomes for a file or a whole run.
type BlockStats struct {
	Patched      int `json:"patched"`
	Compliant    int `json:"compliant"`
	NoProperties int `json:"no_properties"`
	Unterminated int `json:"unterminated"`
}

// Record counts one outcome.
func (s *BlockStats) Record(o BlockOutcome) {
	switch o {
	case OutcomePatched:
		s.Patched++
	case OutcomeCompliant:
		s.Compliant++
	case OutcomeNoProperties:
		s.NoProperties++
	case OutcomeUnterminated:
		s.Unterminated++
	}
}

// Add folds other into s.
func (s *BlockStats) Add(other BlockStats) {
	s.Patched += other.Patched
	s.Compliant += other.Compliant
	s.NoProperties += other.NoProperties
	s.Unterminated += other.Unterminated
}

// Total is the number of object-type markers that opened a block scan.
func (s BlockStats) Total() int {
	return s.Patched + s.Compliant + s.NoProperties + s.Unterminated
}

// Fields renders the counters for a telemetry event.
func (s BlockStats) Fields() map[string]any {
	return map[string]any{
		"patched":       s.Patched,
		"compliant":     s.Compliant,
		"no_properties": s.NoProperties,
		"unterminated":  s.Unterminated,
	}
}
