// Package floataudit audits where LaTeX floats land relative to their first
// reference.
//
// An audit walks the root .aux file and everything it includes, extracts
// caption and first-reference directives, reconciles them into one label
// table, and reports each float's page delta:
//
//	res, err := floataudit.Audit(ctx, floataudit.WithRoot("thesis-audit.aux"))
//	if err != nil {
//		return err
//	}
//	for _, row := range res.Outliers {
//		fmt.Println(row.Label, *row.Delta)
//	}
package floataudit

import (
	"context"
	"fmt"

	"github.com/agentstation/floataudit/pkg/auxfile"
	"github.com/agentstation/floataudit/pkg/delta"
	"github.com/agentstation/floataudit/pkg/directive"
	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/logging"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// Result is the outcome of one audit.
type Result struct {
	// Root is the root auxiliary file as configured
	Root string `json:"root" yaml:"root"`

	// Rows holds one row per captioned float, in report order
	Rows []delta.Row `json:"rows" yaml:"rows"`

	// Outliers holds the rows at or above Threshold, largest |delta| first
	Outliers []delta.Row `json:"outliers" yaml:"outliers"`

	// Conflicts lists caption redefinitions with differing numbers
	Conflicts []reconcile.Conflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`

	// Files lists the auxiliary files read, in traversal order
	Files []string `json:"files" yaml:"files"`

	Summary   delta.Summary   `json:"summary" yaml:"summary"`
	Stats     reconcile.Stats `json:"stats" yaml:"stats"`
	Strategy  string          `json:"strategy" yaml:"strategy"`
	Threshold int             `json:"threshold" yaml:"threshold"`
	Limit     int             `json:"limit" yaml:"limit"`
}

// DisplayedOutliers returns the outliers within the display limit.
func (r *Result) DisplayedOutliers() []delta.Row {
	return delta.Top(r.Outliers, r.Limit)
}

// ConflictErr returns a *errors.ConflictError when any caption was redefined
// with a different number, nil otherwise.
func (r *Result) ConflictErr() error {
	return (&reconcile.Result{Conflicts: r.Conflicts}).Err()
}

// Auditor runs audits with a fixed configuration.
// Hooks may be registered concurrently; Run itself is sequential.
type Auditor struct {
	config *config
	*hooks
}

// New creates an Auditor with the given options.
func New(opts ...Option) (*Auditor, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, err
	}
	return &Auditor{config: cfg, hooks: newHooks()}, nil
}

// Audit creates an Auditor and runs it once.
func Audit(ctx context.Context, opts ...Option) (*Result, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return a.Run(ctx)
}

// Root returns the configured root auxiliary file.
func (a *Auditor) Root() string {
	return a.config.root
}

// Run performs one audit.
//
// A missing root returns an error satisfying errors.IsNotFound. Cancelling ctx
// stops the traversal between files.
func (a *Auditor) Run(ctx context.Context) (*Result, error) {
	cfg := a.config
	logger := cfg.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	walker, err := auxfile.NewWalker(
		auxfile.WithFs(cfg.fs),
		auxfile.WithEncoding(cfg.encoding),
		auxfile.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	rec, err := reconcile.New(reconcile.WithStrategy(cfg.strategy))
	if err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(logging.WithLogger(ctx, logger), "audit")

	for file, err := range walker.Walk(cfg.root) {
		if err != nil {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, ctxErr)
		}

		records := directive.Extract(file.Text)
		logging.FromContext(logging.WithFile(ctx, file.Path)).Debug().
			Int("depth", file.Depth).
			Int("captions", len(records.Captions)).
			Int("first_refs", len(records.FirstRefs)).
			Msg("Read auxiliary file")

		a.triggerFileVisited(file, records)
		rec.Add(file.Path, records)
	}

	merged := rec.Result()
	for _, c := range merged.Conflicts {
		logging.FromContext(logging.WithLabel(ctx, c.Label)).Warn().
			Str("existing", c.Existing.Ordinal).
			Str("existing_file", c.Existing.Source).
			Str("incoming", c.Incoming.Ordinal).
			Str("incoming_file", c.Incoming.Source).
			Str("kept", c.Kept.Ordinal).
			Str("strategy", merged.Strategy).
			Msg("Caption redefined with a different number")
	}
	a.triggerConflicts(merged.Conflicts)

	rows := delta.FromResult(merged, delta.WithPrefixes(cfg.prefixes...))
	res := &Result{
		Root:      cfg.root,
		Rows:      rows,
		Outliers:  delta.Outliers(rows, cfg.threshold),
		Conflicts: merged.Conflicts,
		Files:     merged.Files,
		Summary:   delta.Summarize(rows, cfg.threshold),
		Stats:     merged.Stats,
		Strategy:  merged.Strategy,
		Threshold: cfg.threshold,
		Limit:     cfg.limit,
	}

	logging.FromContext(ctx).Debug().
		Str("root", cfg.root).
		Int("files", len(res.Files)).
		Int("floats", res.Summary.Floats).
		Int("outliers", res.Summary.Outliers).
		Int("conflicts", len(res.Conflicts)).
		Msg("Audit complete")

	return res, nil
}
