// Package ingest provides the ingest command implementation.
package ingest

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/internal/cmd/application"
)

// NewCommand creates the ingest command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "ingest INPUT",
		GroupID: "core",
		Short:   "Merge bibliography entries into the template store",
		Args:    cobra.ExactArgs(1),
		Long: `Ingest folds the venue fields of every entry in INPUT into the
template store.

For each entry with a venue and a year:
• An unknown venue/year gets a new template built from the entry's fields
• A known one gains the fields it lacks; differing values take the entry's
  value and are reported as conflicts
• Entries without a venue or year are skipped and counted

Without --update the store is not touched and the new and changed templates
are printed as they would appear in it. With --update the store is locked,
backed up to PATH.bak, and rewritten newest year first.`,
		Example: `  venuemap ingest new.bib                     # Preview new and changed templates
  venuemap ingest new.bib --update            # Rewrite the store
  venuemap ingest new.bib -t venues.yaml -u   # Rewrite another store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteIngest(cmd.Context(), app, args[0], flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addFlags(cmd)

	return cmd
}
