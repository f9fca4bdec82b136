package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit"
	"github.com/agentstation/floataudit/cmd/application"
	"github.com/agentstation/floataudit/pkg/errors"
)

func newMock(fs afero.Fs) *application.Mock {
	return &application.Mock{
		FsFunc:         func() afero.Fs { return fs },
		ReportPathFunc: func() string { return "/doc/tmp/float_audit_report.tsv" },
		AuditOptionsFunc: func() []floataudit.Option {
			return []floataudit.Option{floataudit.WithRoot("/doc/thesis-audit.aux")}
		},
	}
}

func execute(t *testing.T, app application.Application, args ...string) (string, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "floataudit", SilenceUsage: true}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	root.AddCommand(NewCommand(app))

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"report"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestReportCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/doc/thesis-audit.aux", []byte(`\@input{ch2.aux}
\newlabel{fig:ok}{{1.1}{4}{}{}{}}
\floataudit@firstref{fig:ok}{4}
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/doc/ch2.aux", []byte(`\newlabel{tab:results}{{2}{14}{}{}{}}
\floataudit@firstref{tab:results}{9}
`), 0o644))

	stdout, stderr, err := execute(t, newMock(fs))
	require.NoError(t, err)

	assert.Equal(t, "Wrote /doc/tmp/float_audit_report.tsv\n"+
		"Outliers (|delta| >= 2):\n"+
		"tab:results\t2\tcap=14\tref=9\tdelta=5\n", stdout)
	assert.Empty(t, stderr)

	content, err := afero.ReadFile(fs, "/doc/tmp/float_audit_report.tsv")
	require.NoError(t, err)
	assert.Equal(t, "label\tnum\tcaption_page\tfirst_ref_page\tdelta_pages\n"+
		"fig:ok\t1.1\t4\t4\t0\n"+
		"tab:results\t2\t14\t9\t5\n", string(content))
}

func TestReportCommandMissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	stdout, _, err := execute(t, newMock(fs))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, stdout)

	exists, _ := afero.Exists(fs, "/doc/tmp/float_audit_report.tsv")
	assert.False(t, exists)
}

func TestReportCommandConflicts(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/doc/thesis-audit.aux", []byte(`\newlabel{fig:x}{{1.1}{10}{}{}{}}
\newlabel{fig:x}{{1.2}{12}{}{}{}}
`), 0o644))

	t.Run("warns", func(t *testing.T) {
		_, stderr, err := execute(t, newMock(fs))
		require.NoError(t, err)
		assert.Contains(t, stderr, "1 caption conflict(s)")
		assert.Contains(t, stderr, "fig:x: 1.1")
	})

	t.Run("fails", func(t *testing.T) {
		stdout, _, err := execute(t, newMock(fs), "--fail-on-conflict")
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
		assert.Contains(t, stdout, "Wrote ")
	})
}
