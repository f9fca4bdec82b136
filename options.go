package floataudit

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/floataudit/pkg/auxfile"
	"github.com/agentstation/floataudit/pkg/constants"
	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// Option is a function that configures an Auditor
type Option func(*config) error

// config holds the settings of one audit
type config struct {
	root      string
	fs        afero.Fs
	encoding  string
	strategy  reconcile.Strategy
	prefixes  []string
	threshold int
	limit     int
	logger    *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		root:      constants.DefaultRootFile,
		fs:        afero.NewOsFs(),
		encoding:  constants.DefaultEncoding,
		strategy:  reconcile.LastWriteWins,
		prefixes:  constants.DefaultFloatPrefixes(),
		threshold: constants.OutlierThreshold,
		limit:     constants.OutlierDisplayLimit,
	}
}

// WithRoot sets the root auxiliary file
func WithRoot(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("root", path, "must not be empty")
		}
		c.root = path
		return nil
	}
}

// WithFs sets the filesystem auxiliary files are read from
func WithFs(fs afero.Fs) Option {
	return func(c *config) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "must not be nil")
		}
		c.fs = fs
		return nil
	}
}

// WithEncoding sets the charset auxiliary files are decoded with, by WHATWG label
func WithEncoding(name string) Option {
	return func(c *config) error {
		if _, err := auxfile.LookupEncoding(name); err != nil {
			return err
		}
		c.encoding = name
		return nil
	}
}

// WithStrategy selects the caption merge strategy by name ("last" or "first")
func WithStrategy(name string) Option {
	return func(c *config) error {
		s, err := reconcile.ParseStrategy(name)
		if err != nil {
			return err
		}
		c.strategy = s
		return nil
	}
}

// WithPrefixes sets the label prefixes that identify floats
func WithPrefixes(prefixes ...string) Option {
	return func(c *config) error {
		if len(prefixes) == 0 {
			return errors.NewValidationError("prefixes", prefixes, "at least one prefix is required")
		}
		c.prefixes = prefixes
		return nil
	}
}

// WithThreshold sets the minimum |delta| for an outlier
func WithThreshold(threshold int) Option {
	return func(c *config) error {
		if threshold < 0 {
			return errors.NewValidationError("threshold", threshold, "must not be negative")
		}
		c.threshold = threshold
		return nil
	}
}

// WithLimit sets how many outliers are displayed; 0 means all
func WithLimit(limit int) Option {
	return func(c *config) error {
		if limit < 0 {
			return errors.NewValidationError("limit", limit, "must not be negative")
		}
		c.limit = limit
		return nil
	}
}

// WithLogger sets the logger. Without it the logger is taken from the run context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// apply applies the given options to the config
func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return fmt.Errorf("applying options: %w", err)
		}
	}
	return nil
}
