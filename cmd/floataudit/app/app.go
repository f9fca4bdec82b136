// Package app provides the application context and dependency management
// for the floataudit CLI: configuration, logging, the filesystem and the
// auditor handed to commands.
package app

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/floataudit"
	"github.com/agentstation/floataudit/pkg/errors"
)

// App represents the floataudit application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	fs     afero.Fs
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations; --config is applied
// when the command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Fs returns the filesystem the audit reads from and the report is written to.
func (a *App) Fs() afero.Fs {
	return a.fs
}

// ReportPath returns the configured report path.
func (a *App) ReportPath() string {
	return a.config.Report
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Auditor builds an Auditor from the configuration. Extra options win over
// configured ones.
func (a *App) Auditor(opts ...floataudit.Option) (*floataudit.Auditor, error) {
	base := append(a.config.AuditOptions(),
		floataudit.WithFs(a.fs),
		floataudit.WithLogger(a.logger),
	)
	auditor, err := floataudit.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "auditor", a.config.Root, err)
	}
	return auditor, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFs sets the filesystem (useful for testing).
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}
