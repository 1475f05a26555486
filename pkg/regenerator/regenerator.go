// Package regenerator writes the template store back to disk in its
// deterministic export order, after first saving the previous file as a
// backup.
package regenerator

import (
	"context"
	"fmt"

	"github.com/agentstation/venuemap/internal/persistence"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/templates"
)

// Regenerator serializes a store to its destination file.
type Regenerator struct {
	backupSuffix string
	order        templates.Order
}

// Option configures a Regenerator.
type Option func(*Regenerator)

// WithBackupSuffix sets the suffix appended to the destination path to name
// the backup.
func WithBackupSuffix(suffix string) Option {
	return func(r *Regenerator) {
		if suffix != "" {
			r.backupSuffix = suffix
		}
	}
}

// WithOrder sets the export order.
func WithOrder(order templates.Order) Option {
	return func(r *Regenerator) {
		if order != nil {
			r.order = order
		}
	}
}

// New creates a regenerator.
func New(opts ...Option) *Regenerator {
	r := &Regenerator{
		backupSuffix: constants.BackupSuffix,
		order:        templates.ByYearDesc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result describes a completed regeneration.
type Result struct {
	Path string
	// Backup is empty when the destination did not exist before.
	Backup    string
	Templates int
	Bytes     int
}

// Regenerate writes store to dest. The document is encoded and checked to
// decode back to the exported templates before anything is touched; the current dest is then copied to
// its backup and synced, and only then is dest replaced atomically. Any
// write failure is a *errors.DestinationWriteError; a cancelled ctx returns
// its error before anything is touched.
func (r *Regenerator) Regenerate(ctx context.Context, store *templates.Store, dest string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logger := logging.FromContext(ctx).With().Str("path", dest).Logger()

	exported := store.Export(r.order)
	data, err := templates.Encode(exported)
	if err != nil {
		return Result{}, errors.NewDestinationWriteError(dest, "", err)
	}
	if err := templates.Verify(data, exported); err != nil {
		return Result{}, errors.NewDestinationWriteError(dest, "", fmt.Errorf("encoded store does not re-parse: %w", err))
	}

	backup, err := persistence.Backup(dest, r.backupSuffix)
	if err != nil {
		return Result{}, errors.NewDestinationWriteError(dest, "", err)
	}
	if backup == "" {
		logger.Debug().Msg("No previous store to back up")
	} else {
		logger.Debug().Str("backup", backup).Msg("Backed up store")
	}

	if err := persistence.WriteFile(dest, data); err != nil {
		return Result{}, errors.NewDestinationWriteError(dest, backup, err)
	}

	logger.Info().
		Int("templates", len(exported)).
		Str("backup", backup).
		Msg("Regenerated template store")

	return Result{
		Path:      dest,
		Backup:    backup,
		Templates: len(exported),
		Bytes:     len(data),
	}, nil
}
