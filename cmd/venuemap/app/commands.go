package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/venuemap/cmd/check"
	"github.com/agentstation/venuemap/cmd/venuemap/cmd/complete"
	"github.com/agentstation/venuemap/cmd/venuemap/cmd/ingest"
	"github.com/agentstation/venuemap/cmd/venuemap/cmd/version"
	"github.com/agentstation/venuemap/internal/cmd/application"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(complete.NewCommand(a))
	rootCmd.AddCommand(ingest.NewCommand(a))

	// Lint commands
	rootCmd.AddCommand(check.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
