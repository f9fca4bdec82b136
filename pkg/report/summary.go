package report

import (
	"fmt"
	"io"

	"github.com/agentstation/floataudit/pkg/delta"
)

// OutlierLine formats one outlier for the console.
func OutlierLine(r delta.Row) string {
	return fmt.Sprintf("%s\t%s\tcap=%d\tref=%s\tdelta=%s",
		r.Label, r.Ordinal, r.CaptionPage, optional(r.FirstRefPage), optional(r.Delta))
}

// WriteSummary prints the confirmation line, the outlier header and at most
// limit outliers. outliers must already be ranked.
func WriteSummary(w io.Writer, path string, outliers []delta.Row, threshold, limit int) error {
	if _, err := fmt.Fprintf(w, "Wrote %s\n", path); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Outliers (|delta| >= %d):\n", threshold); err != nil {
		return err
	}
	for _, r := range delta.Top(outliers, limit) {
		if _, err := fmt.Fprintln(w, OutlierLine(r)); err != nil {
			return err
		}
	}
	return nil
}
