// Package reconcile matches bibliography entries against the canonical
// template store and merges them under a completion or ingestion policy.
//
// The same Matcher and Merger serve both modes; only the policy and what the
// caller does with the Result differ. Completion produces patches for the
// source file. Ingestion mutates the store, which the caller then
// regenerates.
package reconcile

import (
	"context"

	"github.com/agentstation/venuemap/pkg/bibtex"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/templates"
)

// Reconciler runs entries through the matcher and merger.
type Reconciler struct {
	store   *templates.Store
	policy  Policy
	matcher *Matcher
	merger  *Merger
}

// New creates a reconciler over store.
func New(store *templates.Store, opts ...Option) (*Reconciler, error) {
	if store == nil {
		return nil, &errors.ValidationError{Field: "store", Message: "cannot be nil"}
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		store:   store,
		policy:  o.policy,
		matcher: NewMatcher(store),
		merger:  NewMerger(o.policy, store, o.normalize),
	}, nil
}

// Policy returns the reconciler's merge policy.
func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Run processes entries in order. Per-entry conditions are collected in the
// result; Run itself does not fail on them.
func (r *Reconciler) Run(ctx context.Context, entries []bibtex.Entry) *Result {
	logger := logging.FromContext(ctx).With().Str("policy", r.policy.String()).Logger()
	ctx = logging.WithLogger(ctx, &logger)
	result := NewResult(r.policy)
	seen := make(map[string]bool, len(entries))

	for _, amb := range r.store.Ambiguities() {
		result.warnf("templates %s and %s share a normalized key; using %s", amb.Kept, amb.Shadowed, amb.Kept)
	}

	for _, e := range entries {
		entryLog := logging.FromContext(logging.WithVenue(logging.WithEntry(ctx, e.ID), e.Venue(), e.Year()))

		result.Stats.Entries++
		duplicate := seen[e.ID]
		seen[e.ID] = true
		if duplicate {
			result.Stats.Duplicates++
			result.warnf("duplicate entry id %s at line %d", e.ID, e.Line)
			entryLog.Warn().Int("line", e.Line).Msg("Duplicate entry id")
		}

		tmpl, err := r.matcher.Match(e)
		switch {
		case errors.IsMissingKey(err):
			result.Errors = append(result.Errors, err)
			result.Stats.SkippedMissing++
			entryLog.Debug().Msg("Skipped entry without venue or year")
			continue
		case errors.IsNoTemplate(err):
			if r.policy == PolicyIngestion {
				r.insert(result, e)
				entryLog.Debug().Msg("Added template")
				continue
			}
			result.Errors = append(result.Errors, err)
			result.Stats.NoTemplate++
			entryLog.Debug().Msg("No template")
			continue
		}

		result.Stats.Matched++
		out := r.merger.Merge(e, tmpl)
		for _, c := range out.Conflicts {
			result.Conflicts = append(result.Conflicts, c)
			result.Errors = append(result.Errors, c.Err())
			result.Stats.Conflicts++
			entryLog.Debug().
				Str("field", c.Field).
				Str("existing", c.Existing).
				Str("template", c.Template).
				Bool("applied", c.Applied).
				Msg("Conflict")
		}

		if r.policy == PolicyIngestion {
			r.recordIngestion(result, tmpl.Key, out)
			continue
		}
		if out.Patch.Len() > 0 && !duplicate {
			result.Patches = append(result.Patches, Patch{EntryID: e.ID, Fields: out.Patch})
			result.Stats.Patched++
			result.Stats.PatchedFields += out.Patch.Len()
		}
	}

	result.Missing = r.matcher.Missing().List()
	result.Finalize()
	logger.Info().
		Int("entries", result.Stats.Entries).
		Int("matched", result.Stats.Matched).
		Int("conflicts", result.Stats.Conflicts).
		Int("missing", len(result.Missing)).
		Dur("duration", result.Duration).
		Msg("Reconciled entries")
	return result
}

// insert creates a template from an unmatched entry so later entries with
// the same normalized key merge into it.
func (r *Reconciler) insert(result *Result, e bibtex.Entry) {
	k := templates.Key{Venue: e.Venue(), Year: e.Year()}
	r.store.Upsert(k, e.Metadata())
	result.Added = append(result.Added, k)
	result.Stats.Added++
}

func (r *Reconciler) recordIngestion(result *Result, k templates.Key, out Outcome) {
	if !out.Updated {
		result.Stats.Unchanged++
		return
	}
	result.Stats.Updated++
	for _, existing := range result.Added {
		if existing == k {
			return
		}
	}
	for _, existing := range result.Updated {
		if existing == k {
			return
		}
	}
	result.Updated = append(result.Updated, k)
}
