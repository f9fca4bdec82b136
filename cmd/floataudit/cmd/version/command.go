// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/floataudit/cmd/application"
	"github.com/agentstation/floataudit/internal/cmd/output"
)

// Info is the version information shown by the command.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "utility",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !format.IsTable() {
				return output.FormatAny(w, info, format)
			}

			_, err = fmt.Fprintf(w, "floataudit version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s\n",
				info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion, info.Platform)
			return err
		},
	}
}
