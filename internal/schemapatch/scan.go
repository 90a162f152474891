package schemapatch

import (
	"strings"

	"github.com/petasbytes/schemafix/internal/metrics"
)

// DefaultWindow is the lookahead bound, in lines, counting the marker line.
const DefaultWindow = 200

const (
	propertiesMarker           = "properties:"
	additionalPropertiesMarker = "additionalProperties:"
)

var objectMarkers = []string{`type: 'object'`, `type: "object"`}

// Block is the result of scanning one candidate object schema.
type Block struct {
	Start int // index of the marker line
	End   int // index of the closing line, -1 when the window ran out

	HasProperties           bool
	HasAdditionalProperties bool
}

// Terminated reports whether a closing line was found inside the window.
func (b Block) Terminated() bool { return b.End >= 0 }

// Outcome classifies the block. Only OutcomePatched blocks are rewritten.
func (b Block) Outcome() metrics.BlockOutcome {
	switch {
	case !b.Terminated():
		return metrics.OutcomeUnterminated
	case b.HasAdditionalProperties:
		return metrics.OutcomeCompliant
	case b.HasProperties:
		return metrics.OutcomePatched
	default:
		return metrics.OutcomeNoProperties
	}
}

// HasObjectMarker reports whether s contains either quoted spelling of the
// object-type marker.
func HasObjectMarker(s string) bool {
	for _, m := range objectMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// scanBlock inspects lines[start+1 : start+window] for the block opened by
// the marker on lines[start].
func scanBlock(lines []string, start, window int) Block {
	b := Block{Start: start, End: -1}
	depth := braceBalance(lines[start])

	for j := start + 1; j < min(start+window, len(lines)); j++ {
		line := lines[j]
		// Order matters: properties is tested against the depth before this
		// line's own braces are counted.
		if depth > 0 && strings.Contains(line, propertiesMarker) {
			b.HasProperties = true
		}
		if strings.Contains(line, additionalPropertiesMarker) {
			b.HasAdditionalProperties = true
		}
		depth += braceBalance(line)
		if depth == 0 {
			b.End = j
			return b
		}
	}
	return b
}

func braceBalance(s string) int {
	return strings.Count(s, "{") - strings.Count(s, "}")
}
