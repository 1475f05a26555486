package complete

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap"
)

// Flags holds the complete command flags.
type Flags struct {
	Output string
	NoLogs bool
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().StringVar(&flags.Output, "output", "", "write the patched source to this path (omit for a dry run)")
	cmd.Flags().BoolVar(&flags.NoLogs, "no-logs", false, "skip writing the conflict and missing-template logs")
	return flags
}

// Options converts the flags into run options.
func (f *Flags) Options() []venuemap.CompleteOption {
	var opts []venuemap.CompleteOption
	if f.Output != "" {
		opts = append(opts, venuemap.WithOutput(f.Output))
	}
	if f.NoLogs {
		opts = append(opts, venuemap.WithLogs(false))
	}
	return opts
}
