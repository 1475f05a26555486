// Package venuemap reconciles bibliography entries against a canonical store
// of venue templates: field mappings keyed by (venue, year).
//
// Two runs share the same matching and merging engine:
//
//   - Complete fills in fields an entry lacks from its template and writes a
//     patched copy of the source, leaving every original line untouched.
//     Conflicting values are logged, never applied.
//   - Ingest folds entries into the store, adding templates for unknown
//     venues and letting entry values win on conflict, then regenerates the
//     store file in a deterministic order after backing it up.
//
// Example usage:
//
//	vm, err := venuemap.New(venuemap.WithTemplatesPath("templates.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vm.OnConflict(func(c reconcile.Conflict) {
//	    log.Printf("%s: %s differs from template", c.EntryID, c.Field)
//	})
//
//	// Dry run: compute patches and write the logs only
//	res, err := vm.Complete(ctx, "refs.bib")
//
//	// Patch into a new file
//	res, err = vm.Complete(ctx, "refs.bib", venuemap.WithOutput("refs.out.bib"))
//
//	// Merge entries into the store and rewrite it
//	ing, err := vm.Ingest(ctx, "new.bib", venuemap.WithUpdate(true))
package venuemap

import (
	"context"
	"fmt"

	"github.com/agentstation/venuemap/pkg/templates"
)

// Client runs completion and ingestion against one template store.
type Client interface {
	// Complete fills missing template fields into the entries of input
	Complete(ctx context.Context, input string, opts ...CompleteOption) (*CompleteResult, error)

	// Ingest merges the entries of input into the template store
	Ingest(ctx context.Context, input string, opts ...IngestOption) (*IngestResult, error)

	// LoadStore reads the configured template store
	LoadStore() (*templates.Store, error)

	// TemplatesPath returns the configured template store path
	TemplatesPath() string

	// OnTemplateAdded registers a callback for templates created by ingestion
	OnTemplateAdded(TemplateAddedHook)

	// OnTemplateUpdated registers a callback for templates changed by ingestion
	OnTemplateUpdated(TemplateUpdatedHook)

	// OnConflict registers a callback for field conflicts
	OnConflict(ConflictHook)

	// OnUnresolvedPatch registers a callback for patches with no entry header
	OnUnresolvedPatch(UnresolvedPatchHook)
}

var _ Client = (*client)(nil)

// client is the internal implementation of the Client interface
type client struct {
	*hooks
	config *config
}

// New creates a Client with the given options
func New(opts ...Option) (Client, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	return &client{hooks: newHooks(), config: cfg}, nil
}

// LoadStore reads the configured template store
func (c *client) LoadStore() (*templates.Store, error) {
	return templates.Load(c.config.templatesPath)
}

// TemplatesPath returns the configured template store path
func (c *client) TemplatesPath() string {
	return c.config.templatesPath
}
