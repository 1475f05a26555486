package reconcile

import (
	"github.com/agentstation/venuemap/pkg/bibtex"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/fields"
	"github.com/agentstation/venuemap/pkg/normalize"
	"github.com/agentstation/venuemap/pkg/templates"
)

// Conflict is a field whose entry and template values differ after
// normalization.
type Conflict struct {
	EntryID  string
	Field    string
	Existing string
	Template string
	// Applied is set when the entry's value replaced the template's.
	Applied bool
}

// Err returns the conflict as a *errors.ConflictError.
func (c Conflict) Err() error {
	err := errors.NewConflictError(c.EntryID, c.Field, c.Existing, c.Template)
	err.Applied = c.Applied
	return err
}

// Outcome is the result of merging one entry with its template.
type Outcome struct {
	// Patch holds the fields to insert into the entry. Always empty under
	// ingestion.
	Patch *fields.Map
	// Conflicts are in field order.
	Conflicts []Conflict
	// Added lists fields that ingestion copied from the entry into the template.
	Added []string
	// Updated reports that ingestion changed the stored template.
	Updated bool
}

// Merger computes patches and conflicts under one policy.
type Merger struct {
	policy    Policy
	store     *templates.Store
	normalize normalize.Func
}

// NewMerger creates a merger. Under ingestion, store receives the merged
// templates.
func NewMerger(policy Policy, store *templates.Store, fn normalize.Func) *Merger {
	if fn == nil {
		fn = normalize.Text
	}
	return &Merger{policy: policy, store: store, normalize: fn}
}

// Merge merges e with tmpl according to the merger's policy.
func (m *Merger) Merge(e bibtex.Entry, tmpl templates.Template) Outcome {
	if m.policy == PolicyIngestion {
		return m.ingest(e, tmpl)
	}
	return m.complete(e, tmpl)
}

// complete adds template fields absent from the entry. Neither the entry nor
// the store is modified.
func (m *Merger) complete(e bibtex.Entry, tmpl templates.Template) Outcome {
	out := Outcome{Patch: &fields.Map{}}
	for _, f := range tmpl.Fields.Fields() {
		if fields.Excluded(f.Name) {
			continue
		}
		existing, ok := e.Fields.Get(f.Name)
		if !ok {
			out.Patch.Set(f.Name, f.Value)
			continue
		}
		if m.normalize(existing) != m.normalize(f.Value) {
			out.Conflicts = append(out.Conflicts, Conflict{
				EntryID:  e.ID,
				Field:    f.Name,
				Existing: existing,
				Template: f.Value,
			})
		}
	}
	return out
}

// ingest folds the entry's metadata into the template: new fields are
// appended and differing fields take the entry's raw value.
func (m *Merger) ingest(e bibtex.Entry, tmpl templates.Template) Outcome {
	out := Outcome{Patch: &fields.Map{}}
	merged := tmpl.Fields.Clone()
	for _, f := range e.Metadata().Fields() {
		current, ok := merged.Get(f.Name)
		if !ok {
			merged.Set(f.Name, f.Value)
			out.Added = append(out.Added, f.Name)
			continue
		}
		if m.normalize(current) != m.normalize(f.Value) {
			merged.Set(f.Name, f.Value)
			out.Conflicts = append(out.Conflicts, Conflict{
				EntryID:  e.ID,
				Field:    f.Name,
				Existing: f.Value,
				Template: current,
				Applied:  true,
			})
		}
	}

	if len(out.Added) > 0 || len(out.Conflicts) > 0 {
		m.store.Upsert(tmpl.Key, merged)
		out.Updated = true
	}
	return out
}
