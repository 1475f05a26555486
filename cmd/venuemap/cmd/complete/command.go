// Package complete provides the complete command implementation.
package complete

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/internal/cmd/application"
)

// NewCommand creates the complete command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "complete INPUT",
		GroupID: "core",
		Short:   "Fill missing venue fields from the template store",
		Args:    cobra.ExactArgs(1),
		Long: `Complete matches every entry of INPUT to a template by its venue
(booktitle, or journal when booktitle is empty) and year, and fills in the
template fields the entry lacks.

The command will:
• Load the template store and parse INPUT (either failing aborts the run)
• Compute one patch per entry with the fields to add
• Log conflicts, where entry and template disagree, without changing them
• Write LOGDIR/<input>.conflicts.txt and LOGDIR/<input>.missing_templates.txt
• With --output, write a copy of INPUT with the fields inserted after each
  entry's header line; every original line is kept byte for byte

Without --output the run is a dry run and prints what it would add.`,
		Example: `  venuemap complete refs.bib                         # Dry run: show additions and conflicts
  venuemap complete refs.bib --output refs.out.bib   # Write the patched copy
  venuemap complete refs.bib -t venues.yaml          # Use another template store
  venuemap complete refs.bib -o json                 # Machine-readable report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteComplete(cmd.Context(), app, args[0], flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addFlags(cmd)

	return cmd
}
