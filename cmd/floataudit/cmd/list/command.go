// Package list implements the list command: render audit rows, outliers,
// conflicts or the summary in table, wide, json or yaml form.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/floataudit/cmd/application"
	"github.com/agentstation/floataudit/internal/cmd/output"
)

// Flags holds list-specific flags.
type Flags struct {
	Outliers  bool
	Conflicts bool
	Summary   bool
	Files     bool
}

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "Show audit rows without writing the report",
		Long: `List runs the audit and prints the result to stdout. It does not write
the TSV report.

Without flags every float row is shown. Output defaults to a table on a
terminal and JSON otherwise; use -o to choose.`,
		Example: `  floataudit list
  floataudit list --outliers -o wide
  floataudit list --conflicts
  floataudit list --summary -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Outliers, "outliers", false, "Show only outliers, largest |delta| first")
	cmd.Flags().BoolVar(&flags.Conflicts, "conflicts", false, "Show caption conflicts")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false, "Show summary counts")
	cmd.Flags().BoolVar(&flags.Files, "files", false, "Show the auxiliary files read, in traversal order")
	cmd.MarkFlagsMutuallyExclusive("outliers", "conflicts", "summary", "files")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	auditor, err := app.Auditor()
	if err != nil {
		return err
	}
	res, err := auditor.Run(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case flags.Summary:
		return output.FormatAny(w, res.Summary, format)
	case flags.Conflicts:
		if len(res.Conflicts) == 0 && format.IsTable() {
			_, err := fmt.Fprintln(w, "No caption conflicts")
			return err
		}
		return output.FormatConflicts(w, res.Conflicts, format)
	case flags.Files:
		if format.IsTable() {
			for _, f := range res.Files {
				if _, err := fmt.Fprintln(w, f); err != nil {
					return err
				}
			}
			return nil
		}
		return output.FormatAny(w, res.Files, format)
	case flags.Outliers:
		return output.FormatRows(w, res.DisplayedOutliers(), res.Threshold, format)
	default:
		return output.FormatRows(w, res.Rows, res.Threshold, format)
	}
}
