// Package version provides the version command implementation.
package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/internal/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
)

// Info is the build information printed by the version command.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteVersion(app, cmd.OutOrStdout())
		},
	}
}

// ExecuteVersion prints the build information in the configured format.
func ExecuteVersion(app application.Application, out io.Writer) error {
	info := Info{
		Version:   app.Version(),
		Commit:    app.Commit(),
		Date:      app.Date(),
		BuiltBy:   app.BuiltBy(),
		GoVersion: runtime.Version(),
	}

	switch format := output.Format(app.OutputFormat()); format {
	case output.FormatTable, "":
		_, err := fmt.Fprintf(out, "venuemap %s\n", info.Version)
		return err
	default:
		return output.NewFormatter(format).Format(out, info)
	}
}
