package report

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/petasbytes/schemafix/internal/metrics"
)

// Status is the outcome of one file.
type Status string

const (
	StatusFixed     Status = "fixed"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped" // no object marker; never opened for writing
	StatusError     Status = "error"
)

// File is the persisted view of one processed file.
type File struct {
	Path       string             `json:"path"`
	Status     Status             `json:"status"`
	Blocks     metrics.BlockStats `json:"blocks"`
	Insertions []int              `json:"insertions,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Summary is the persisted view of a whole run.
type Summary struct {
	RunID  string             `json:"run_id"`
	Root   string             `json:"root"`
	Total  int                `json:"total"`
	Fixed  int                `json:"fixed"`
	Failed int                `json:"failed"`
	Blocks metrics.BlockStats `json:"blocks"`
	Files  []File             `json:"files"`
}

// Add appends f and updates the counters.
func (s *Summary) Add(f File) {
	s.Files = append(s.Files, f)
	s.Total++
	switch f.Status {
	case StatusFixed:
		s.Fixed++
	case StatusError:
		s.Failed++
	}
	s.Blocks.Add(f.Blocks)
}

// Load reads a summary written by Save. A missing file yields nil, nil.
func Load(path string) (*Summary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes s to path as indented JSON.
func Save(path string, s *Summary) error {
	b, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
