package ingest

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap"
)

// Flags holds the ingest command flags.
type Flags struct {
	Update bool
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().BoolVarP(&flags.Update, "update", "u", false, "rewrite the template store (default is report only)")
	return flags
}

// Options converts the flags into run options.
func (f *Flags) Options() []venuemap.IngestOption {
	return []venuemap.IngestOption{venuemap.WithUpdate(f.Update)}
}
