package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/floataudit/cmd/floataudit/cmd/list"
	"github.com/agentstation/floataudit/cmd/floataudit/cmd/report"
	"github.com/agentstation/floataudit/cmd/floataudit/cmd/version"
	"github.com/agentstation/floataudit/cmd/floataudit/cmd/watch"
	"github.com/agentstation/floataudit/internal/cmd/globals"
	"github.com/agentstation/floataudit/internal/cmd/output"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// Execute runs the floataudit CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "floataudit",
		Short:   "Audit where LaTeX floats land relative to their first reference",
		Version: a.version,
		Long: `floataudit reads the .aux files of a LaTeX build and compares the page
each figure and table caption lands on with the page where the float is
first referenced in the text.

The build must record first references with \floataudit@firstref{label}{page}
entries. Run without a command to write the report.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := report.Run(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr(), report.Options{})
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "utility", Title: "Utility Commands:"})

	globals.AddFlags(rootCmd)
	a.addAuditFlags(rootCmd)

	rootCmd.SetVersionTemplate("floataudit {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// addAuditFlags adds the audit settings as persistent flags. Defaults shown in
// help are the values resolved from config and environment.
func (a *App) addAuditFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.String(keyRoot, a.config.Root, "Root .aux file")
	flags.String(keyReport, a.config.Report, "Path of the TSV report")
	flags.Int(keyThreshold, a.config.Threshold, "Minimum |delta| in pages for an outlier")
	flags.Int(keyLimit, a.config.Limit, "Maximum outliers printed (0 for all)")
	flags.StringSlice("prefix", a.config.Prefixes, "Label prefixes that identify floats")
	flags.String(keyEncoding, a.config.Encoding, "Charset of the .aux files (WHATWG label, e.g. utf-8, latin1)")

	strategies := make([]string, 0, 2)
	for _, s := range reconcile.Strategies() {
		strategies = append(strategies, s.Name()+" ("+s.Description()+")")
	}
	flags.String(keyStrategy, a.config.Strategy, "Caption merge strategy for redefined labels: "+strings.Join(strategies, ", "))
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	if err := a.config.UpdateFromFlags(cmd); err != nil {
		return err
	}
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Str("root", a.config.Root).
		Str("report", a.config.Report).
		Strs("prefixes", a.config.Prefixes).
		Str("strategy", a.config.Strategy).
		Msg("Configuration resolved")

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(report.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(watch.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
