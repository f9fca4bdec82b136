package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit"
	"github.com/agentstation/floataudit/cmd/application"
	"github.com/agentstation/floataudit/pkg/delta"
)

func fixture(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/doc/main.aux", []byte(`\newlabel{fig:a}{{1.1}{3}{}{}{}}
\newlabel{tab:results}{{2}{14}{}{}{}}
\floataudit@firstref{tab:results}{9}
\newlabel{fig:b}{{2.1}{20}{}{}{}}
\floataudit@firstref{fig:b}{17}
\newlabel{fig:b}{{2.2}{20}{}{}{}}
`), 0o644))
	return fs
}

func execute(t *testing.T, format string, args ...string) string {
	t.Helper()
	fs := fixture(t)
	app := &application.Mock{
		FsFunc:           func() afero.Fs { return fs },
		OutputFormatFunc: func() string { return format },
		AuditOptionsFunc: func() []floataudit.Option {
			return []floataudit.Option{floataudit.WithRoot("/doc/main.aux")}
		},
	}

	root := &cobra.Command{Use: "floataudit"}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	root.AddCommand(NewCommand(app))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"list"}, args...))
	require.NoError(t, root.ExecuteContext(context.Background()))

	exists, _ := afero.Exists(fs, "tmp/float_audit_report.tsv")
	assert.False(t, exists, "list must not write the report")
	return out.String()
}

func TestListJSON(t *testing.T) {
	var rows []delta.Row
	require.NoError(t, json.Unmarshal([]byte(execute(t, "json")), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "fig:a", rows[0].Label)
	assert.Nil(t, rows[0].Delta)
}

func TestListOutliersYAML(t *testing.T) {
	var rows []delta.Row
	require.NoError(t, yaml.Unmarshal([]byte(execute(t, "yaml", "--outliers")), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "tab:results", rows[0].Label)
	assert.Equal(t, "fig:b", rows[1].Label)
}

func TestListTable(t *testing.T) {
	out := execute(t, "table")
	assert.Contains(t, out, "tab:results")
	assert.Contains(t, out, "+5")
}

func TestListConflicts(t *testing.T) {
	out := execute(t, "table", "--conflicts")
	assert.Contains(t, out, "fig:b")
	assert.Contains(t, out, "2.1 @ /doc/main.aux")
}

func TestListSummary(t *testing.T) {
	var s delta.Summary
	require.NoError(t, json.Unmarshal([]byte(execute(t, "json", "--summary")), &s))
	assert.Equal(t, delta.Summary{Floats: 3, Unreferenced: 1, Outliers: 2, MaxDelta: 5}, s)
}

func TestListFiles(t *testing.T) {
	assert.Equal(t, "/doc/main.aux\n", execute(t, "table", "--files"))
}
