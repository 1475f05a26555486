package fields

// Identity and citation fields. They describe one particular entry and are
// never carried by a template or inserted by a patch.
var excluded = map[string]struct{}{
	"id":        {},
	"entrytype": {},
	"year":      {},
	"booktitle": {},
	"journal":   {},
	"title":     {},
	"author":    {},
	"pages":     {},
	"volume":    {},
	"url":       {},
	"doi":       {},
	"pdf":       {},
	"numpages":  {},
	"articleno": {},
	"number":    {},
	"note":      {},
}

// Excluded reports whether name is an identity/citation field.
func Excluded(name string) bool {
	_, ok := excluded[Key(name)]
	return ok
}

// ExcludedNames returns the excluded field names.
func ExcludedNames() []string {
	out := make([]string, 0, len(excluded))
	for n := range excluded {
		out = append(out, n)
	}
	return out
}
