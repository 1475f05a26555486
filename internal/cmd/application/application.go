// Package application defines what CLI commands need from the application:
// a configured venuemap client, the logger, the output format and build
// information. Commands accept this interface rather than the concrete App
// so they can be tested against Mock.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
)

// Application is implemented by cmd/venuemap/app.App and by Mock.
type Application interface {
	// Client returns the client built from configuration, creating it lazily.
	Client() (venuemap.Client, error)

	// ClientWithOptions returns a new client with opts applied after the
	// configured ones, for commands that override the store path or log
	// directory from flags.
	ClientWithOptions(opts ...venuemap.Option) (venuemap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
