// Package delta joins reconciled caption and first-reference maps into report
// rows and ranks the floats that drifted furthest from their first mention.
package delta

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/floataudit/pkg/constants"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// Row is one float in the report.
//
// FirstRefPage and Delta are nil when the float is captioned but never
// referenced. That case is reported blank, never as zero.
type Row struct {
	Label        string `json:"label" yaml:"label"`
	Ordinal      string `json:"num" yaml:"num"`
	CaptionPage  int    `json:"caption_page" yaml:"caption_page"`
	FirstRefPage *int   `json:"first_ref_page" yaml:"first_ref_page"`
	Delta        *int   `json:"delta_pages" yaml:"delta_pages"`
}

// Referenced reports whether the float has a first reference.
func (r Row) Referenced() bool {
	return r.FirstRefPage != nil
}

// AbsDelta returns |delta| and whether a delta is present.
func (r Row) AbsDelta() (int, bool) {
	if r.Delta == nil {
		return 0, false
	}
	d := *r.Delta
	if d < 0 {
		d = -d
	}
	return d, true
}

type options struct {
	prefixes []string
}

// Option configures Analyze.
type Option func(*options)

// WithPrefixes sets the label prefixes that identify floats.
// Defaults to "fig:" and "tab:".
func WithPrefixes(prefixes ...string) Option {
	return func(o *options) {
		if len(prefixes) > 0 {
			o.prefixes = prefixes
		}
	}
}

// IsFloatLabel reports whether label starts with one of prefixes.
func IsFloatLabel(label string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(label, p) {
			return true
		}
	}
	return false
}

// Analyze builds one row per captioned float label, in report order.
func Analyze(captions map[string]reconcile.Entry, firstRefs map[string]int, opts ...Option) []Row {
	o := options{prefixes: constants.DefaultFloatPrefixes()}
	for _, opt := range opts {
		opt(&o)
	}

	rows := make([]Row, 0, len(captions))
	for label, entry := range captions {
		if !IsFloatLabel(label, o.prefixes) {
			continue
		}
		row := Row{Label: label, Ordinal: entry.Ordinal, CaptionPage: entry.Page}
		if ref, ok := firstRefs[label]; ok {
			delta := entry.Page - ref
			row.FirstRefPage = &ref
			row.Delta = &delta
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, Compare)
	return rows
}

// FromResult analyzes a reconciliation result.
func FromResult(res *reconcile.Result, opts ...Option) []Row {
	return Analyze(res.Captions, res.FirstRefs, opts...)
}

// Compare orders rows by caption page, then ordinal text, then label.
func Compare(a, b Row) int {
	return cmp.Or(
		cmp.Compare(a.CaptionPage, b.CaptionPage),
		strings.Compare(a.Ordinal, b.Ordinal),
		strings.Compare(a.Label, b.Label),
	)
}
