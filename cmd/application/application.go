// Package application provides the application interface for floataudit commands.
//
// The Application interface is the contract between the application layer
// and command implementations. Commands accept it instead of the concrete
// App so they can be tested with a Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            auditor, err := app.Auditor()
//	            if err != nil {
//	                return err
//	            }
//	            res, err := auditor.Run(cmd.Context())
//	            // ... render res
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	fs := afero.NewMemMapFs()
//	mock := &application.Mock{
//	    FsFunc: func() afero.Fs { return fs },
//	    AuditOptionsFunc: func() []floataudit.Option {
//	        return []floataudit.Option{floataudit.WithRoot("/doc/main.aux")}
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/floataudit"
)

// Application provides what commands need from the app.
// The App struct from cmd/floataudit/app implements it.
type Application interface {
	// Auditor returns an Auditor built from the resolved configuration.
	// Extra options are applied after the configured ones and win.
	Auditor(opts ...floataudit.Option) (*floataudit.Auditor, error)

	// Fs returns the filesystem auxiliary files are read from and the report is written to.
	Fs() afero.Fs

	// ReportPath returns where the TSV report is written.
	ReportPath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (json, yaml, table, wide),
	// empty when auto-detection applies.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
