package filter

import "strings"

// Match selects how a field value is compared by the backend.
type Match int

const (
	// Contains renders a fuzzy substring clause: field~'*value*'.
	Contains Match = iota
	// Exact renders a quoted equality clause: field:'value'.
	Exact
	// Numeric renders an unquoted equality clause: field:value.
	Numeric
)

// String returns the short name used in help text and debug logs.
func (m Match) String() string {
	switch m {
	case Exact:
		return "exact"
	case Numeric:
		return "numeric"
	default:
		return "contains"
	}
}

const conjunction = " and "

// Clause is a single field comparison.
type Clause struct {
	Field string
	Match Match
	Value string
}

// String renders the clause in the backend grammar. Values are emitted as-is.
func (c Clause) String() string {
	switch c.Match {
	case Exact:
		return c.Field + ":'" + c.Value + "'"
	case Numeric:
		return c.Field + ":" + c.Value
	default:
		return c.Field + "~'*" + c.Value + "*'"
	}
}

// Field declares one input of an advanced filter form.
type Field struct {
	Name        string
	Label       string
	Match       Match
	Options     []string // allowed values shown as a hint; empty means free text
	Placeholder string
}

// Schema is the ordered field list of a screen's advanced filter form.
type Schema []Field

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// Clauses converts raw form values into clauses in declaration order.
// Blank values (empty or whitespace only) are skipped; keys that are not in
// the schema are ignored.
func (s Schema) Clauses(values map[string]string) []Clause {
	clauses := make([]Clause, 0, len(s))
	for _, f := range s {
		value := strings.TrimSpace(values[f.Name])
		if value == "" {
			continue
		}
		clauses = append(clauses, Clause{Field: f.Name, Match: f.Match, Value: value})
	}
	return clauses
}

// Build renders the form values as a single conjunctive expression. An empty
// result means "no filter".
func (s Schema) Build(values map[string]string) string {
	return Join(s.Clauses(values))
}

// Join renders clauses joined with " and ".
func Join(clauses []Clause) string {
	if len(clauses) == 0 {
		return ""
	}
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, conjunction)
}

// Keyword renders the basic-search clause for field, or "" when value is blank.
func Keyword(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || field == "" {
		return ""
	}
	return Clause{Field: field, Match: Contains, Value: value}.String()
}
