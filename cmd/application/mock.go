package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/floataudit"
	"github.com/agentstation/floataudit/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	AuditOptionsFunc func() []floataudit.Option
	FsFunc           func() afero.Fs
	ReportPathFunc   func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Auditor builds an Auditor over Fs with AuditOptionsFunc's options and a no-op logger.
func (m *Mock) Auditor(opts ...floataudit.Option) (*floataudit.Auditor, error) {
	base := []floataudit.Option{
		floataudit.WithFs(m.Fs()),
		floataudit.WithLogger(m.Logger()),
	}
	if m.AuditOptionsFunc != nil {
		base = append(base, m.AuditOptionsFunc()...)
	}
	return floataudit.New(append(base, opts...)...)
}

// Fs returns the filesystem using the mock function or an in-memory one.
func (m *Mock) Fs() afero.Fs {
	if m.FsFunc != nil {
		return m.FsFunc()
	}
	return afero.NewMemMapFs()
}

// ReportPath returns the report path using the mock function or the default.
func (m *Mock) ReportPath() string {
	if m.ReportPathFunc != nil {
		return m.ReportPathFunc()
	}
	return constants.DefaultReportPath
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
