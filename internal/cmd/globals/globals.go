// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds global common flags across all commands.
type Flags struct {
	Config   string
	Output   string
	LogLevel string
	Quiet    bool
	Verbose  bool
	NoColor  bool
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.PersistentFlags().StringVar(&flags.Config, "config", "",
		"Config file (default: ./.floataudit.yaml or $HOME/.floataudit.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", "",
		"Output format: table, json, yaml, wide")
	// --format and --fmt are aliases for --output
	cmd.PersistentFlags().StringVar(&flags.Output, "format", "", "")
	cmd.PersistentFlags().StringVar(&flags.Output, "fmt", "", "")
	_ = cmd.PersistentFlags().MarkHidden("format")
	_ = cmd.PersistentFlags().MarkHidden("fmt")

	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error (overrides -v and -q)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")

	return flags
}

// Parse extracts global flags from the command hierarchy.
// Subcommands use it when they were not handed the flags struct directly.
func Parse(cmd *cobra.Command) (*Flags, error) {
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}

	config, _ := root.PersistentFlags().GetString("config")
	output, _ := root.PersistentFlags().GetString("output")
	logLevel, _ := root.PersistentFlags().GetString("log-level")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")

	return &Flags{
		Config:   config,
		Output:   output,
		LogLevel: logLevel,
		Quiet:    quiet,
		Verbose:  verbose,
		NoColor:  noColor,
	}, nil
}
