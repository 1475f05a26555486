package venuemap

import (
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/normalize"
)

// config holds the client configuration.
type config struct {
	templatesPath string
	logDir        string
	backupSuffix  string
	lockStore     bool
	normalize     normalize.Func
}

func defaultConfig() *config {
	return &config{
		templatesPath: constants.DefaultTemplatesPath,
		logDir:        constants.DefaultLogDir,
		backupSuffix:  constants.BackupSuffix,
		lockStore:     true,
		normalize:     normalize.Text,
	}
}

// Option is a function that configures a Client.
type Option func(*config) error

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithTemplatesPath sets the canonical template store file.
func WithTemplatesPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("templates_path", path, "cannot be empty")
		}
		c.templatesPath = path
		return nil
	}
}

// WithLogDir sets the directory the conflict and missing-template logs are
// written to.
func WithLogDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			dir = constants.DefaultLogDir
		}
		c.logDir = dir
		return nil
	}
}

// WithBackupSuffix sets the suffix of the store backup written before each
// regeneration.
func WithBackupSuffix(suffix string) Option {
	return func(c *config) error {
		if suffix == "" {
			return errors.NewValidationError("backup_suffix", suffix, "cannot be empty")
		}
		c.backupSuffix = suffix
		return nil
	}
}

// WithStoreLock configures whether an ingestion update holds an advisory
// lock on the store file.
func WithStoreLock(enabled bool) Option {
	return func(c *config) error {
		c.lockStore = enabled
		return nil
	}
}

// WithNormalizer replaces the value comparison function.
func WithNormalizer(fn normalize.Func) Option {
	return func(c *config) error {
		if fn == nil {
			return errors.NewValidationError("normalizer", nil, "cannot be nil")
		}
		c.normalize = fn
		return nil
	}
}
