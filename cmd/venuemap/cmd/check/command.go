// Package check provides the check command and its lint subcommands.
package check

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/internal/cmd/application"
)

// NewCommand creates the check command with its months and protect
// subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		GroupID: "lint",
		Short:   "Lint a bibliography file",
		Long: `Check runs standalone heuristics over a bibliography file. They read
the file only and never consult the template store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newMonthsCommand(app))
	cmd.AddCommand(newProtectCommand(app))

	return cmd
}

func newMonthsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "months INPUT",
		Short: "List conference and journal entries without a month",
		Args:  cobra.ExactArgs(1),
		Long: `Months lists inproceedings, article, proceedings and conference
entries whose month field is missing or blank, with their year (N/A when
absent).`,
		Example: `  venuemap check months refs.bib`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteMonths(app, args[0], cmd.OutOrStdout())
		},
	}
}

func newProtectCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "protect INPUT",
		Short: "List title terms that need brace protection",
		Args:  cobra.ExactArgs(1),
		Long: `Protect scans titles for terms a bibliography style would lower-case:
mixed-case words (ResNet), acronyms (BERT) and terms containing digits
(GPT-4). Spans already inside braces are ignored, and titles that are mostly
upper case are skipped.`,
		Example: `  venuemap check protect refs.bib
  venuemap check protect refs.bib -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteProtect(app, args[0], cmd.OutOrStdout())
		},
	}
}
