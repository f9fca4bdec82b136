// Package watch implements the watch command: re-run the report whenever an
// auxiliary file the last run read is rewritten.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/floataudit/cmd/application"
	"github.com/agentstation/floataudit/cmd/floataudit/cmd/report"
	"github.com/agentstation/floataudit/internal/cmd/alerts"
	"github.com/agentstation/floataudit/internal/cmd/output"
	fswatch "github.com/agentstation/floataudit/internal/watch"
	"github.com/agentstation/floataudit/pkg/constants"
)

// NewCommand creates the watch command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		debounce time.Duration
		opts     report.Options
	)

	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Re-run the report whenever the .aux files change",
		Long: `Watch runs the report, then waits for any of the .aux files it read to be
written, created or replaced and runs it again. A failed run is reported and
watching continues, so a missing root during a clean rebuild is not fatal.

Stop with Ctrl-C.`,
		Example: `  floataudit watch
  floataudit watch --root build/thesis-audit.aux --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), app, cmd.OutOrStdout(), cmd.ErrOrStderr(), debounce, opts)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", constants.WatchDebounce,
		"Quiet period after the last change before re-running")
	cmd.Flags().BoolVar(&opts.FailOnConflict, "fail-on-conflict", false,
		"Report caption conflicts as a failed run")

	return cmd
}

func run(ctx context.Context, app application.Application, stdout, stderr io.Writer, debounce time.Duration, opts report.Options) error {
	logger := app.Logger()

	w, err := fswatch.New(fswatch.WithDebounce(debounce), fswatch.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close watcher")
		}
	}()

	auditor, err := app.Auditor()
	if err != nil {
		return err
	}
	root := auditor.Root()
	notify := alerts.NewFormatWriter(stderr, output.FormatTable)

	rerun := func(ctx context.Context) error {
		files := []string{root}
		res, err := report.Run(ctx, app, stdout, stderr, opts)
		if res != nil {
			files = append(files, res.Files...)
		}
		if setErr := w.SetFiles(files); setErr != nil {
			return setErr
		}
		if err != nil {
			_ = notify.WriteAlert(alerts.NewError("Report failed").WithError(err))
			return nil
		}
		return notify.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Watching %d file(s) for changes", len(w.Files()))))
	}

	if err := rerun(ctx); err != nil {
		return err
	}

	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		logger.Info().Strs("changed", changed).Msg("Auxiliary files changed")
		return rerun(ctx)
	})
}
