package output

import (
	"io"
	"strconv"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/lint"
	"github.com/agentstation/venuemap/pkg/reconcile"
)

// FieldRow is one field a completion run adds to an entry.
type FieldRow struct {
	EntryID string `json:"entry_id" yaml:"entry_id"`
	Field   string `json:"field" yaml:"field"`
	Value   string `json:"value" yaml:"value"`
}

// ConflictRow is one field whose entry and template values differ.
type ConflictRow struct {
	EntryID  string `json:"entry_id" yaml:"entry_id"`
	Field    string `json:"field" yaml:"field"`
	Existing string `json:"existing" yaml:"existing"`
	Template string `json:"template" yaml:"template"`
	Applied  bool   `json:"applied" yaml:"applied"`
}

// MissingRow is a venue/year pair with no template.
type MissingRow struct {
	Venue   string `json:"venue" yaml:"venue"`
	Year    string `json:"year" yaml:"year"`
	Entries int    `json:"entries" yaml:"entries"`
}

// CompleteReport is the machine-readable form of a completion run.
type CompleteReport struct {
	Input      string        `json:"input" yaml:"input"`
	Output     string        `json:"output,omitempty" yaml:"output,omitempty"`
	DryRun     bool          `json:"dry_run" yaml:"dry_run"`
	Summary    string        `json:"summary" yaml:"summary"`
	Additions  []FieldRow    `json:"additions" yaml:"additions"`
	Conflicts  []ConflictRow `json:"conflicts" yaml:"conflicts"`
	Missing    []MissingRow  `json:"missing" yaml:"missing"`
	Unresolved []string      `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Warnings   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Logs       []string      `json:"logs,omitempty" yaml:"logs,omitempty"`
}

// SnippetRow is a template block as it would appear in the store.
type SnippetRow struct {
	Venue string `json:"venue" yaml:"venue"`
	Year  string `json:"year" yaml:"year"`
	New   bool   `json:"new" yaml:"new"`
	YAML  string `json:"yaml" yaml:"yaml"`
}

// IngestReport is the machine-readable form of an ingestion run.
type IngestReport struct {
	Input     string        `json:"input" yaml:"input"`
	Update    bool          `json:"update" yaml:"update"`
	Summary   string        `json:"summary" yaml:"summary"`
	Templates []SnippetRow  `json:"templates" yaml:"templates"`
	Conflicts []ConflictRow `json:"conflicts" yaml:"conflicts"`
	Warnings  []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Store     string        `json:"store,omitempty" yaml:"store,omitempty"`
	Backup    string        `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// FieldRows flattens patches into one row per added field, in patch order.
func FieldRows(patches []reconcile.Patch) []FieldRow {
	rows := []FieldRow{}
	for _, p := range patches {
		for _, f := range p.Fields.Fields() {
			rows = append(rows, FieldRow{EntryID: p.EntryID, Field: f.Name, Value: f.Value})
		}
	}
	return rows
}

// ConflictRows converts conflicts for output.
func ConflictRows(conflicts []reconcile.Conflict) []ConflictRow {
	rows := []ConflictRow{}
	for _, c := range conflicts {
		rows = append(rows, ConflictRow{
			EntryID:  c.EntryID,
			Field:    c.Field,
			Existing: c.Existing,
			Template: c.Template,
			Applied:  c.Applied,
		})
	}
	return rows
}

// MissingRows converts missing keys for output.
func MissingRows(missing []reconcile.MissingKey) []MissingRow {
	rows := []MissingRow{}
	for _, m := range missing {
		rows = append(rows, MissingRow{Venue: m.Venue, Year: m.Year, Entries: m.Count})
	}
	return rows
}

// NewCompleteReport builds the report for a completion run.
func NewCompleteReport(res *venuemap.CompleteResult) CompleteReport {
	report := CompleteReport{
		Input:      res.Input,
		Output:     res.Output,
		DryRun:     res.DryRun,
		Summary:    res.Summary(),
		Additions:  FieldRows(res.Patches),
		Conflicts:  ConflictRows(res.Conflicts),
		Missing:    MissingRows(res.Missing),
		Unresolved: res.Patch.Unresolved,
		Warnings:   res.Warnings,
	}
	if res.Logs.Conflicts != "" {
		report.Logs = []string{res.Logs.Conflicts, res.Logs.Missing}
	}
	return report
}

// NewIngestReport builds the report for an ingestion run.
func NewIngestReport(res *venuemap.IngestResult) IngestReport {
	report := IngestReport{
		Input:     res.Input,
		Update:    res.Update,
		Summary:   res.Summary(),
		Templates: []SnippetRow{},
		Conflicts: ConflictRows(res.Conflicts),
		Warnings:  res.Warnings,
	}
	for _, s := range res.Snippets {
		report.Templates = append(report.Templates, SnippetRow{
			Venue: s.Key.Venue,
			Year:  s.Key.Year,
			New:   s.New,
			YAML:  s.YAML,
		})
	}
	if res.Regenerated != nil {
		report.Store = res.Regenerated.Path
		report.Backup = res.Regenerated.Backup
	}
	return report
}

// AdditionsTable lists the fields a completion run adds.
func AdditionsTable(rows []FieldRow) Data {
	data := Data{
		Title:   "Additions:",
		Empty:   constants.NoRows,
		Headers: []string{"Entry", "Field", "Value"},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.EntryID, r.Field, r.Value})
	}
	return data
}

// ConflictsTable lists differing fields.
func ConflictsTable(rows []ConflictRow) Data {
	data := Data{
		Title:   "Conflicts:",
		Empty:   constants.NoRows,
		Headers: []string{"Entry", "Field", "Existing", "Template"},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.EntryID, r.Field, r.Existing, r.Template})
	}
	return data
}

// MissingTable lists venue/year pairs without a template.
func MissingTable(rows []MissingRow) Data {
	data := Data{
		Title:           "Missing templates:",
		Empty:           constants.NoRows,
		Headers:         []string{"Venue", "Year", "Entries"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Venue, r.Year, strconv.Itoa(r.Entries)})
	}
	return data
}

// MissingMonthsTable lists entries without a month.
func MissingMonthsTable(found []lint.MissingMonth) Data {
	data := Data{
		Title:   "Entries missing a month:",
		Empty:   constants.NoRows,
		Headers: []string{"Entry", "Kind", "Year"},
	}
	for _, m := range found {
		data.Rows = append(data.Rows, []string{m.ID, m.Kind, m.Year})
	}
	return data
}

// TermsTable lists title terms that need brace protection.
func TermsTable(found []lint.Term) Data {
	data := Data{
		Title:   "Unprotected title terms:",
		Empty:   constants.NoRows,
		Headers: []string{"Entry", "Term", "Reason"},
	}
	for _, t := range found {
		data.Rows = append(data.Rows, []string{t.EntryID, t.Term, string(t.Reason)})
	}
	return data
}

// Tables renders several tables separated by blank lines.
func Tables(w io.Writer, format Format, tables ...Data) error {
	formatter := &TableFormatter{Wide: format == FormatWide}
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := formatter.Format(w, t); err != nil {
			return err
		}
	}
	return nil
}
