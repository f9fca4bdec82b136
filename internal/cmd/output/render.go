package output

import (
	"io"

	"github.com/agentstation/floataudit/internal/cmd/table"
	"github.com/agentstation/floataudit/pkg/delta"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// FormatRows renders report rows. Table formats get the row table, structured
// formats get the rows themselves.
func FormatRows(w io.Writer, rows []delta.Row, threshold int, format Format) error {
	var data any = rows
	if format.IsTable() {
		data = table.RowsToTableData(rows, threshold, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatConflicts renders caption conflicts.
func FormatConflicts(w io.Writer, conflicts []reconcile.Conflict, format Format) error {
	var data any = conflicts
	if format.IsTable() {
		data = table.ConflictsToTableData(conflicts)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatAny renders arbitrary data. Structs become property tables.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
