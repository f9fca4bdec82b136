package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	isolate(t)
	t.Setenv("LOG_OUTPUT", "discard")
	app, err := New("1.0.0", "abc123", "2025-01-01", "test", WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return app
}

func run(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	cmd := app.createRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeThesis(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "chapters"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thesis-audit.aux"), []byte(`\relax
\@input{chapters/results.aux}
\@input{chapters/missing.aux}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chapters", "results.aux"), []byte(`\newlabel{tab:results}{{2}{14}{Results}{}{}}
\floataudit@firstref{tab:results}{9}
\newlabel{fig:plot}{{2.1}{15}{Plot}{}{}}
`), 0o644))
	return dir
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2025-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
	assert.NotNil(t, app.Fs())
	assert.Equal(t, "tmp/float_audit_report.tsv", app.ReportPath())
}

func TestExecuteBareRunsReport(t *testing.T) {
	dir := writeThesis(t)
	app := newTestApp(t)
	reportPath := filepath.Join(dir, "tmp", "float_audit_report.tsv")

	stdout, _, err := run(t, app, "--root", filepath.Join(dir, "thesis-audit.aux"), "--report", reportPath)
	require.NoError(t, err)

	assert.Equal(t, "Wrote "+reportPath+"\n"+
		"Outliers (|delta| >= 2):\n"+
		"tab:results\t2\tcap=14\tref=9\tdelta=5\n", stdout)

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, "label\tnum\tcaption_page\tfirst_ref_page\tdelta_pages\n"+
		"tab:results\t2\t14\t9\t5\n"+
		"fig:plot\t2.1\t15\t\t\n", string(content))
}

func TestExecuteReportFlags(t *testing.T) {
	dir := writeThesis(t)
	app := newTestApp(t)
	reportPath := filepath.Join(dir, "out.tsv")

	stdout, _, err := run(t, app, "report",
		"--root", filepath.Join(dir, "thesis-audit.aux"),
		"--report", reportPath,
		"--threshold", "6")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+reportPath+"\nOutliers (|delta| >= 6):\n", stdout)
}

func TestExecuteMissingRoot(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t)

	_, _, err := run(t, app, "--root", filepath.Join(dir, "thesis-audit.aux"), "--report", filepath.Join(dir, "r.tsv"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, statErr := os.Stat(filepath.Join(dir, "r.tsv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteListJSON(t *testing.T) {
	dir := writeThesis(t)
	app := newTestApp(t)

	stdout, _, err := run(t, app, "list", "-o", "json", "--outliers", "--root", filepath.Join(dir, "thesis-audit.aux"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `"label": "tab:results"`)
	assert.NotContains(t, stdout, "fig:plot")
}

func TestExecuteConfigFlag(t *testing.T) {
	dir := writeThesis(t)
	app := newTestApp(t)

	configPath := filepath.Join(dir, "floataudit.yaml")
	reportPath := filepath.Join(dir, "from-config.tsv")
	require.NoError(t, os.WriteFile(configPath, []byte("root: "+filepath.Join(dir, "thesis-audit.aux")+
		"\nreport: "+reportPath+"\nthreshold: 9\n"), 0o644))

	stdout, _, err := run(t, app, "--config", configPath, "--threshold", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+reportPath)
	assert.Contains(t, stdout, "Outliers (|delta| >= 5):\ntab:results")
}

func TestExecuteRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"strategy", []string{"--strategy", "newest"}},
		{"encoding", []string{"--encoding", "klingon"}},
		{"threshold", []string{"--threshold", "-2"}},
		{"format", []string{"-o", "csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeThesis(t)
			app := newTestApp(t)
			args := append([]string{"--root", filepath.Join(dir, "thesis-audit.aux"), "--report", filepath.Join(dir, "r.tsv")}, tt.args...)
			_, _, err := run(t, app, args...)
			require.Error(t, err)
		})
	}
}

func TestExecuteVersion(t *testing.T) {
	app := newTestApp(t)
	stdout, _, err := run(t, app, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "floataudit version 1.0.0")
}
