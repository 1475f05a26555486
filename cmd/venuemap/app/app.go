// Package app provides the application context and dependency management
// for the venuemap CLI. It centralizes configuration, logging, and the
// lazily built venuemap client that commands share.
package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
)

// App represents the venuemap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// runID tags every log line of one invocation.
	runID string

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client venuemap.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		runID:   uuid.NewString(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// RunID returns the id attached to this invocation's logs.
func (a *App) RunID() string {
	return a.runID
}

// WithRunContext attaches the app logger and run id to ctx, so library
// code logging through logging.FromContext carries them.
func (a *App) WithRunContext(ctx context.Context) context.Context {
	return logging.WithRunID(logging.WithLogger(ctx, a.logger), a.runID)
}

// Client returns the venuemap client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (venuemap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := venuemap.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client with opts applied after the
// configured options. It does not replace the shared client.
func (a *App) ClientWithOptions(opts ...venuemap.Option) (venuemap.Client, error) {
	c, err := venuemap.New(append(a.clientOptions(), opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "with custom options", err)
	}
	return c, nil
}

// Shutdown performs graceful shutdown of the application. Runs hold no
// background work; the store lock is released by the run that took it.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Str("run_id", a.runID).Msg("Shutting down")
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []venuemap.Option {
	var opts []venuemap.Option

	if a.config.TemplatesPath != "" {
		opts = append(opts, venuemap.WithTemplatesPath(a.config.TemplatesPath))
	}
	if a.config.LogDir != "" {
		opts = append(opts, venuemap.WithLogDir(a.config.LogDir))
	}
	if a.config.BackupSuffix != "" {
		opts = append(opts, venuemap.WithBackupSuffix(a.config.BackupSuffix))
	}
	opts = append(opts, venuemap.WithStoreLock(a.config.LockStore))

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c venuemap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
