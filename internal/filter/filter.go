// Package filter implements the document filter algebra used to query the
// recipe corpus: membership tests over list fields, numeric ranges over
// scalar fields, and conjunction.
//
// A Filter is backend-neutral. In-process stores evaluate it with Match; the
// SQLite store renders it to SQL; Document renders the equivalent
// MongoDB-style query for logs and the explain command.
package filter

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rcliao/recipe-match/internal/model"
)

// Field names a filterable recipe field.
type Field string

const (
	FieldID          Field = "_id"
	FieldTags        Field = "tags"
	FieldIngredients Field = "ingredients"
	FieldMinutes     Field = "minutes"
	FieldCalories    Field = "nutrition.calories"
)

// Op is a filter operator.
type Op string

const (
	OpAnd   Op = "$and"
	OpAll   Op = "$all"   // list field contains every value
	OpIn    Op = "$in"    // list field contains at least one value (or scalar equals one)
	OpNin   Op = "$nin"   // list field contains none of the values (or scalar equals none)
	OpRange Op = "$range" // scalar field within [Min, Max]; nil bound is open
	OpNone  Op = "$none"  // no list element contains any value as a case-insensitive substring
)

// Filter is one node of a filter expression tree.
type Filter struct {
	Op      Op
	Field   Field
	Values  []string
	Min     *float64
	Max     *float64
	Clauses []Filter
}

// And combines clauses. Nested conjunctions are flattened.
func And(clauses ...Filter) Filter {
	out := Filter{Op: OpAnd}
	for _, c := range clauses {
		if c.Op == OpAnd {
			out.Clauses = append(out.Clauses, c.Clauses...)
			continue
		}
		out.Clauses = append(out.Clauses, c)
	}
	return out
}

// All matches documents whose list field holds every value.
func All(field Field, values ...string) Filter {
	return Filter{Op: OpAll, Field: field, Values: values}
}

// In matches documents whose field holds at least one of values.
func In(field Field, values ...string) Filter {
	return Filter{Op: OpIn, Field: field, Values: values}
}

// Nin matches documents whose field holds none of values.
func Nin(field Field, values ...string) Filter {
	return Filter{Op: OpNin, Field: field, Values: values}
}

// Between matches lo <= field <= hi.
func Between(field Field, lo, hi float64) Filter {
	return Filter{Op: OpRange, Field: field, Min: &lo, Max: &hi}
}

// AtLeast matches field >= lo with no upper bound.
func AtLeast(field Field, lo float64) Filter {
	return Filter{Op: OpRange, Field: field, Min: &lo}
}

// NoneContaining matches documents where no element of the list field
// contains any of substrs, ignoring case.
func NoneContaining(field Field, substrs ...string) Filter {
	lower := make([]string, len(substrs))
	for i, s := range substrs {
		lower[i] = strings.ToLower(s)
	}
	return Filter{Op: OpNone, Field: field, Values: lower}
}

// Match reports whether r satisfies f.
func (f Filter) Match(r model.Recipe) bool {
	switch f.Op {
	case OpAnd:
		for _, c := range f.Clauses {
			if !c.Match(r) {
				return false
			}
		}
		return true
	case OpAll:
		have := listValues(r, f.Field)
		for _, v := range f.Values {
			if !contains(have, v) {
				return false
			}
		}
		return true
	case OpIn:
		have := listValues(r, f.Field)
		for _, v := range f.Values {
			if contains(have, v) {
				return true
			}
		}
		return false
	case OpNin:
		have := listValues(r, f.Field)
		for _, v := range f.Values {
			if contains(have, v) {
				return false
			}
		}
		return true
	case OpRange:
		x := scalarValue(r, f.Field)
		if f.Min != nil && x < *f.Min {
			return false
		}
		if f.Max != nil && x > *f.Max {
			return false
		}
		return true
	case OpNone:
		for _, item := range listValues(r, f.Field) {
			item = strings.ToLower(item)
			for _, sub := range f.Values {
				if strings.Contains(item, sub) {
					return false
				}
			}
		}
		return true
	}
	return false
}

func listValues(r model.Recipe, field Field) []string {
	switch field {
	case FieldTags:
		return r.Tags
	case FieldIngredients:
		return r.Ingredients
	case FieldID:
		return []string{r.ID}
	}
	return nil
}

func scalarValue(r model.Recipe, field Field) float64 {
	switch field {
	case FieldMinutes:
		return float64(r.Minutes)
	case FieldCalories:
		return r.Calories()
	}
	return 0
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Document renders f as a MongoDB-style query document.
func (f Filter) Document() map[string]any {
	switch f.Op {
	case OpAnd:
		parts := make([]map[string]any, 0, len(f.Clauses))
		for _, c := range f.Clauses {
			parts = append(parts, c.Document())
		}
		switch len(parts) {
		case 0:
			return map[string]any{}
		case 1:
			return parts[0]
		}
		return map[string]any{string(OpAnd): parts}
	case OpAll, OpIn, OpNin:
		return map[string]any{string(f.Field): map[string]any{string(f.Op): f.Values}}
	case OpRange:
		cond := map[string]any{}
		if f.Min != nil {
			cond["$gte"] = *f.Min
		}
		if f.Max != nil {
			cond["$lte"] = *f.Max
		}
		return map[string]any{string(f.Field): cond}
	case OpNone:
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = regexp.QuoteMeta(v)
		}
		return map[string]any{string(f.Field): map[string]any{
			"$not": map[string]any{"$regex": strings.Join(quoted, "|"), "$options": "i"},
		}}
	}
	return map[string]any{}
}

// String returns the JSON form of Document.
func (f Filter) String() string {
	b, err := json.Marshal(f.Document())
	if err != nil {
		return "{}"
	}
	return string(b)
}
