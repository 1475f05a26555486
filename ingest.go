package venuemap

import (
	"context"

	"github.com/agentstation/venuemap/internal/persistence"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/reconcile"
	"github.com/agentstation/venuemap/pkg/regenerator"
	"github.com/agentstation/venuemap/pkg/templates"
)

type ingestOptions struct {
	update bool
}

// IngestOption configures a single ingestion run.
type IngestOption func(*ingestOptions)

// WithUpdate configures whether the store file is rewritten. Without it the
// run only reports what would change.
func WithUpdate(enabled bool) IngestOption {
	return func(o *ingestOptions) {
		o.update = enabled
	}
}

// Snippet is a template rendered as it would appear in the store.
type Snippet struct {
	Key  templates.Key
	New  bool
	YAML string
}

// IngestResult is the outcome of an ingestion run.
type IngestResult struct {
	Input  string
	Update bool

	*reconcile.Result

	// Snippets holds the added and then the updated templates in their
	// final state.
	Snippets []Snippet
	// Regenerated is set when the store was rewritten.
	Regenerated *regenerator.Result
}

// Ingest merges the entries of input into the template store.
//
// With WithUpdate(true) the store file is locked for the run when locking
// is enabled, then backed up and regenerated at the end. Without it nothing
// is written.
func (c *client) Ingest(ctx context.Context, input string, opts ...IngestOption) (*IngestResult, error) {
	o := &ingestOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ctx = logging.WithOperation(logging.WithInput(ctx, input), "ingest")
	logger := logging.FromContext(ctx)

	if o.update && c.config.lockStore {
		lock, err := persistence.Acquire(c.config.templatesPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release store lock")
			}
		}()
		logger.Debug().Str("lock", lock.Path()).Msg("Locked store")
	}

	store, err := c.LoadStore()
	if err != nil {
		return nil, err
	}
	src, err := readSource(input)
	if err != nil {
		return nil, err
	}

	r, err := reconcile.New(store,
		reconcile.WithPolicy(reconcile.PolicyIngestion),
		reconcile.WithNormalizer(c.config.normalize),
	)
	if err != nil {
		return nil, err
	}
	result := r.Run(ctx, src.entries)
	c.triggerResult(result)

	res := &IngestResult{Input: input, Update: o.update, Result: result}
	if res.Snippets, err = snippets(store, result); err != nil {
		return nil, err
	}

	if !o.update {
		return res, nil
	}

	regen, err := regenerator.New(regenerator.WithBackupSuffix(c.config.backupSuffix)).
		Regenerate(ctx, store, c.config.templatesPath)
	if err != nil {
		return nil, err
	}
	res.Regenerated = &regen
	return res, nil
}

func snippets(store *templates.Store, result *reconcile.Result) ([]Snippet, error) {
	var out []Snippet
	add := func(keys []templates.Key, isNew bool) error {
		for _, k := range keys {
			tmpl, ok := store.Get(k)
			if !ok {
				continue
			}
			text, err := templates.Snippet(tmpl)
			if err != nil {
				return err
			}
			out = append(out, Snippet{Key: k, New: isNew, YAML: text})
		}
		return nil
	}
	if err := add(result.Added, true); err != nil {
		return nil, err
	}
	if err := add(result.Updated, false); err != nil {
		return nil, err
	}
	return out, nil
}
