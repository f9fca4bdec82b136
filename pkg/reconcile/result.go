package reconcile

import (
	"slices"

	"github.com/agentstation/floataudit/pkg/errors"
)

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Captions maps label to the surviving caption entry
	Captions map[string]Entry

	// FirstRefs maps label to the minimum first-reference page
	FirstRefs map[string]int

	// Conflicts lists caption redefinitions with differing ordinals, in the order seen
	Conflicts []Conflict

	// Files lists the files merged, in traversal order
	Files []string

	// Strategy is the name of the caption merge strategy used
	Strategy string

	// Stats counts what was merged
	Stats Stats
}

// Stats summarises a reconciliation pass.
type Stats struct {
	Files           int `json:"files" yaml:"files"`
	CaptionRecords  int `json:"caption_records" yaml:"caption_records"`
	FirstRefRecords int `json:"first_ref_records" yaml:"first_ref_records"`
	Labels          int `json:"labels" yaml:"labels"`
}

// ConflictLabels returns the distinct conflicting labels, sorted.
func (r *Result) ConflictLabels() []string {
	labels := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		labels = append(labels, c.Label)
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}

// Err returns a *errors.ConflictError when any caption conflict was seen.
func (r *Result) Err() error {
	if len(r.Conflicts) == 0 {
		return nil
	}
	return errors.NewConflictError("caption", r.ConflictLabels())
}
