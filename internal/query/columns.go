package query

import (
	"fmt"
	"regexp"
)

// Column pairs a column name with the value written to or matched against it.
type Column struct {
	Name  string
	Value Value
}

// Columns is an ordered column-value mapping. The order of the slice is the
// order of the generated column list, SET list or WHERE conjunction.
type Columns []Column

// Key identifies one row (or, in a sequence, one composite-key row).
type Key struct {
	Column string
	Value  Value
}

// Set appends name=v, replacing an earlier entry with the same name in place.
func (cs Columns) Set(name string, v Value) Columns {
	for i := range cs {
		if cs[i].Name == name {
			cs[i].Value = v
			return cs
		}
	}
	return append(cs, Column{Name: name, Value: v})
}

// WithoutAbsent returns a copy of cs without the absent entries.
func (cs Columns) WithoutAbsent() Columns {
	return cs.filter(func(c Column) bool { return !c.Value.IsAbsent() })
}

// WithoutEmpty returns a copy of cs without absent entries and without
// zero-length strings. Updates from free-text forms use this so a blank
// field leaves the stored value alone.
func (cs Columns) WithoutEmpty() Columns {
	return cs.filter(func(c Column) bool {
		return !c.Value.IsAbsent() && !c.Value.IsEmptyString()
	})
}

func (cs Columns) filter(keep func(Column) bool) Columns {
	out := make(Columns, 0, len(cs))
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifier(names ...string) error {
	for _, name := range names {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}
