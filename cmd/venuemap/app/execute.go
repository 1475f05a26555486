package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/logging"
)

// Execute runs the venuemap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "venuemap",
		Short:   "Reconcile bibliography entries with canonical venue templates",
		Version: a.version,
		Long: `Venuemap keeps the venue metadata of a BibTeX bibliography consistent
with a canonical store of templates keyed by venue and year.

complete fills fields an entry lacks (acronym, rank, location, ...) from the
matching template and writes a patched copy of the source without touching
any original line. Conflicting values are logged, never applied.

ingest folds entries into the store, adding templates for unknown venues,
and with --update rewrites the store in a deterministic order after backing
it up.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "lint",
		Title: "Lint Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/"+constants.DefaultConfigName+".yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.StringP("templates", "t", "", "template store path (default "+constants.DefaultTemplatesPath+")")
	flags.String("log-dir", "", "directory for the conflict and missing-template logs")

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("venuemap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It applies flags on top
// of the loaded configuration and rebuilds the logger from the result.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)
	if cmd.Flags().Changed("templates") {
		a.config.TemplatesPath = mustGetString(cmd, "templates")
	}
	if cmd.Flags().Changed("log-dir") {
		a.config.LogDir = mustGetString(cmd, "log-dir")
	}

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	a.config.Format = string(output.DetectFormat(string(format)))

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	cmd.SetContext(a.WithRunContext(cmd.Context()))
	a.logger.Debug().Str("run_id", a.runID).Str("templates", a.config.TemplatesPath).Msg("Starting run")

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
