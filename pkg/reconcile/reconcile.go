// Package reconcile merges per-file directive records into the two label maps
// the delta analysis runs on: label -> caption entry and label -> earliest
// first-reference page.
//
// The caption map depends on insertion order. Which entry survives a duplicate
// label is decided by the Strategy, and Walker traversal order is the order
// records must be added in. The first-reference map takes the minimum page and
// is independent of order.
package reconcile

import (
	"github.com/agentstation/floataudit/pkg/directive"
)

// Entry is the caption record kept for a label.
type Entry struct {
	Ordinal string `json:"num" yaml:"num"`
	Page    int    `json:"page" yaml:"page"`
	// Source is the file the entry came from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Conflict records a label whose caption was redefined with a different ordinal.
type Conflict struct {
	Label    string `json:"label" yaml:"label"`
	Existing Entry  `json:"existing" yaml:"existing"`
	Incoming Entry  `json:"incoming" yaml:"incoming"`
	Kept     Entry  `json:"kept" yaml:"kept"`
}

// Reconciler accumulates records from a single traversal.
// It is not safe for concurrent use.
type Reconciler struct {
	strategy Strategy

	captions  map[string]Entry
	firstRefs map[string]int
	conflicts []Conflict
	files     []string
	stats     Stats
}

// Option configures a Reconciler.
type Option func(*Reconciler) error

// WithStrategy sets the caption merge strategy. Defaults to LastWriteWins.
func WithStrategy(s Strategy) Option {
	return func(r *Reconciler) error {
		if s != nil {
			r.strategy = s
		}
		return nil
	}
}

// New creates a Reconciler with empty maps.
func New(opts ...Option) (*Reconciler, error) {
	r := &Reconciler{
		strategy: LastWriteWins,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.reset()
	return r, nil
}

func (r *Reconciler) reset() {
	r.captions = make(map[string]Entry)
	r.firstRefs = make(map[string]int)
	r.conflicts = nil
	r.files = nil
	r.stats = Stats{}
}

// Add merges the records extracted from one file.
func (r *Reconciler) Add(file string, recs directive.Records) {
	r.files = append(r.files, file)
	r.stats.Files++

	for _, c := range recs.Captions {
		r.addCaption(file, c)
	}
	for _, ref := range recs.FirstRefs {
		r.addFirstRef(ref)
	}
}

func (r *Reconciler) addCaption(file string, c directive.Caption) {
	r.stats.CaptionRecords++
	incoming := Entry{Ordinal: c.Ordinal, Page: c.Page, Source: file}

	existing, ok := r.captions[c.Label]
	if !ok {
		r.captions[c.Label] = incoming
		return
	}

	kept := r.strategy.Resolve(existing, incoming)
	r.captions[c.Label] = kept

	if existing.Ordinal != incoming.Ordinal {
		r.conflicts = append(r.conflicts, Conflict{
			Label:    c.Label,
			Existing: existing,
			Incoming: incoming,
			Kept:     kept,
		})
	}
}

func (r *Reconciler) addFirstRef(ref directive.FirstRef) {
	r.stats.FirstRefRecords++
	if prev, ok := r.firstRefs[ref.Label]; ok && prev <= ref.Page {
		return
	}
	r.firstRefs[ref.Label] = ref.Page
}

// Result hands off the accumulated maps and resets the Reconciler.
// The returned maps are not shared with any later run.
func (r *Reconciler) Result() *Result {
	res := &Result{
		Captions:  r.captions,
		FirstRefs: r.firstRefs,
		Conflicts: r.conflicts,
		Files:     r.files,
		Strategy:  r.strategy.Name(),
		Stats:     r.stats,
	}
	res.Stats.Labels = len(r.captions)
	r.reset()
	return res
}
