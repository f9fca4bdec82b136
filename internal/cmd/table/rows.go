// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/agentstation/floataudit/pkg/delta"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RowsToTableData converts report rows to table format.
// The wide form adds the outlier marker column.
func RowsToTableData(rows []delta.Row, threshold int, wide bool) Data {
	headers := []string{"Label", "Num", "Caption Page", "First Ref", "Delta"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Outlier")
		align = append(align, AlignCenter)
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.Label,
			r.Ordinal,
			strconv.Itoa(r.CaptionPage),
			FormatPage(r.FirstRefPage),
			FormatDelta(r.Delta),
		}
		if wide {
			marker := ""
			if d, ok := r.AbsDelta(); ok && d >= threshold {
				marker = "*"
			}
			row = append(row, marker)
		}
		out = append(out, row)
	}

	return Data{
		Headers:         headers,
		Rows:            out,
		ColumnAlignment: align,
	}
}

// ConflictsToTableData converts caption conflicts to table format.
func ConflictsToTableData(conflicts []reconcile.Conflict) Data {
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			c.Label,
			c.Existing.Ordinal + " @ " + c.Existing.Source,
			c.Incoming.Ordinal + " @ " + c.Incoming.Source,
			c.Kept.Ordinal,
		})
	}
	return Data{
		Headers: []string{"Label", "Existing", "Incoming", "Kept"},
		Rows:    rows,
	}
}

// FormatPage renders an optional page, "-" when absent.
func FormatPage(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

// FormatDelta renders an optional signed delta, "-" when absent.
// Positive deltas carry an explicit sign so direction reads at a glance.
func FormatDelta(d *int) string {
	if d == nil {
		return "-"
	}
	if *d > 0 {
		return "+" + strconv.Itoa(*d)
	}
	return strconv.Itoa(*d)
}
