package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit/pkg/delta"
	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/report"
)

func ptr(v int) *int { return &v }

var sampleRows = []delta.Row{
	{Label: "fig:lonely", Ordinal: "1.1", CaptionPage: 3},
	{Label: "fig:early", Ordinal: "2.1", CaptionPage: 8, FirstRefPage: ptr(11), Delta: ptr(-3)},
	{Label: "tab:results", Ordinal: "2", CaptionPage: 14, FirstRefPage: ptr(9), Delta: ptr(5)},
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTSV(&buf, sampleRows))

	want := "label\tnum\tcaption_page\tfirst_ref_page\tdelta_pages\n" +
		"fig:lonely\t1.1\t3\t\t\n" +
		"fig:early\t2.1\t8\t11\t-3\n" +
		"tab:results\t2\t14\t9\t5\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTSV(&buf, nil))
	assert.Equal(t, report.Header+"\n", buf.String())
}

func TestSaveCreatesParentsAndReplaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/work/tmp/nested/float_audit_report.tsv"

	require.NoError(t, report.Save(fs, path, sampleRows))
	require.NoError(t, report.Save(fs, path, sampleRows[2:]))

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, report.Header+"\ntab:results\t2\t14\t9\t5\n", string(content))

	entries, err := afero.ReadDir(fs, "/work/tmp/nested")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "float_audit_report.tsv", entries[0].Name())
}

func TestSaveReadOnlyFilesystem(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := report.Save(fs, "/out/report.tsv", sampleRows)
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestWriteSummary(t *testing.T) {
	outliers := delta.Outliers(sampleRows, 2)

	var buf bytes.Buffer
	require.NoError(t, report.WriteSummary(&buf, "tmp/float_audit_report.tsv", outliers, 2, 80))

	want := "Wrote tmp/float_audit_report.tsv\n" +
		"Outliers (|delta| >= 2):\n" +
		"tab:results\t2\tcap=14\tref=9\tdelta=5\n" +
		"fig:early\t2.1\tcap=8\tref=11\tdelta=-3\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSummaryLimit(t *testing.T) {
	var rows []delta.Row
	for i := 0; i < 100; i++ {
		rows = append(rows, delta.Row{Label: "fig:x", Ordinal: "1", CaptionPage: 50, FirstRefPage: ptr(1), Delta: ptr(49)})
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteSummary(&buf, "r.tsv", rows, 2, 80))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 82)
}
