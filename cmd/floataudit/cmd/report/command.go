// Package report implements the report command: audit the document, write
// the TSV report and print the outlier summary.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/floataudit"
	"github.com/agentstation/floataudit/cmd/application"
	"github.com/agentstation/floataudit/internal/cmd/alerts"
	"github.com/agentstation/floataudit/internal/cmd/output"
	reportfile "github.com/agentstation/floataudit/pkg/report"
)

// Options controls one report run.
type Options struct {
	// FailOnConflict turns caption conflicts into a command error.
	FailOnConflict bool
}

// NewCommand creates the report command.
func NewCommand(app application.Application) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Write the float placement report",
		Long: `Report walks the root .aux file and every file it includes, pairs each
figure and table caption with its first reference, and writes one TSV row
per float. Floats whose caption lands at least --threshold pages away from
their first reference are listed on stdout.

This is also what floataudit does when run without a command.`,
		Example: `  floataudit report
  floataudit report --root build/thesis-audit.aux --report out/floats.tsv
  floataudit report --threshold 3 --limit 20
  floataudit report --fail-on-conflict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := Run(cmd.Context(), app, cmd.OutOrStdout(), cmd.ErrOrStderr(), *opts)
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.FailOnConflict, "fail-on-conflict", false,
		"Exit non-zero when a caption label is defined with different numbers")

	return cmd
}

// Run audits, saves the report and prints the summary to stdout.
// Caption conflicts are announced on stderr.
func Run(ctx context.Context, app application.Application, stdout, stderr io.Writer, opts Options) (*floataudit.Result, error) {
	auditor, err := app.Auditor()
	if err != nil {
		return nil, err
	}

	res, err := auditor.Run(ctx)
	if err != nil {
		return nil, err
	}

	path := app.ReportPath()
	if err := reportfile.Save(app.Fs(), path, res.Rows); err != nil {
		return res, err
	}
	app.Logger().Debug().Str("path", path).Int("rows", len(res.Rows)).Msg("Report written")

	if err := reportfile.WriteSummary(stdout, path, res.DisplayedOutliers(), res.Threshold, res.Limit); err != nil {
		return res, err
	}

	if len(res.Conflicts) > 0 {
		alert := alerts.NewWarning(fmt.Sprintf("%d caption conflict(s), kept per %q strategy", len(res.Conflicts), res.Strategy))
		for _, c := range res.Conflicts {
			alert.WithDetails(fmt.Sprintf("%s: %s (%s) vs %s (%s), kept %s",
				c.Label, c.Existing.Ordinal, c.Existing.Source, c.Incoming.Ordinal, c.Incoming.Source, c.Kept.Ordinal))
		}
		if err := alerts.NewFormatWriter(stderr, output.FormatTable).WriteAlert(alert); err != nil {
			return res, err
		}
		if opts.FailOnConflict {
			return res, res.ConflictErr()
		}
	}

	return res, nil
}
