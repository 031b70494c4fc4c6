package query

import (
	"fmt"
)

// Builder produces Statements for one SQL dialect. Every method is pure: it
// validates its input and returns a statement or an error without any I/O.
//
// Table and column names are interpolated into the text and must be plain
// identifiers. Values are always carried as bound arguments.
type Builder struct {
	dialect *Dialect
}

// NewBuilder returns a Builder for d. A nil dialect means Postgres.
func NewBuilder(d *Dialect) *Builder {
	if d == nil {
		d = Postgres
	}
	return &Builder{dialect: d}
}

func (b *Builder) Dialect() *Dialect { return b.dialect }

// SelectAll builds `SELECT * FROM {table}`.
func (b *Builder) SelectAll(table string) (Statement, error) {
	if err := checkIdentifier(table); err != nil {
		return Statement{}, err
	}
	return Statement{Verb: VerbSelect, Text: "SELECT * FROM " + table}, nil
}

// SelectWhere builds `SELECT * FROM {table} WHERE {column}={value}`.
func (b *Builder) SelectWhere(table, column string, value Value) (Statement, error) {
	if err := checkIdentifier(table, column); err != nil {
		return Statement{}, err
	}
	if err := checkPresent(column, value); err != nil {
		return Statement{}, err
	}

	var w sqlWriter
	w.WriteString("SELECT * FROM " + table + " WHERE " + column + "=")
	w.bind(value)
	return w.statement(VerbSelect), nil
}

// Insert builds `INSERT INTO {table} ({cols}) VALUES ({vals})`. Absent
// columns are dropped first; ErrEmptyInsert is returned if none remain.
func (b *Builder) Insert(table string, cols Columns) (Statement, error) {
	return b.insert(table, cols, false)
}

// InsertIgnore is Insert with the dialect's "do nothing on conflict" form.
func (b *Builder) InsertIgnore(table string, cols Columns) (Statement, error) {
	return b.insert(table, cols, true)
}

func (b *Builder) insert(table string, cols Columns, ignore bool) (Statement, error) {
	if err := checkIdentifier(table); err != nil {
		return Statement{}, err
	}
	cols = cols.WithoutAbsent()
	if len(cols) == 0 {
		return Statement{}, fmt.Errorf("%w: %s", ErrEmptyInsert, table)
	}

	var names, values sqlWriter
	for i, c := range cols {
		if err := checkIdentifier(c.Name); err != nil {
			return Statement{}, err
		}
		if i > 0 {
			names.WriteString(", ")
			values.WriteString(", ")
		}
		names.WriteString(c.Name)
		values.bind(c.Value)
	}

	if ignore {
		return Statement{
			Verb: VerbInsert,
			Text: b.dialect.insertIgnore(table, names.String(), values.String()),
			Args: values.args,
		}, nil
	}
	return Statement{
		Verb: VerbInsert,
		Text: "INSERT INTO " + table + " (" + names.String() + ") VALUES (" + values.String() + ")",
		Args: values.args,
	}, nil
}

// DeleteWhere builds `DELETE FROM {table} WHERE a=.. AND b=..` over every
// entry of match, in order. An empty match is refused with ErrEmptyDelete
// since it would delete the whole table.
func (b *Builder) DeleteWhere(table string, match Columns) (Statement, error) {
	if err := checkIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(match) == 0 {
		return Statement{}, fmt.Errorf("%w: %s", ErrEmptyDelete, table)
	}

	keys := make([]Key, len(match))
	for i, c := range match {
		keys[i] = Key{Column: c.Name, Value: c.Value}
	}

	var w sqlWriter
	w.WriteString("DELETE FROM " + table + " WHERE ")
	if err := w.conjunction(keys); err != nil {
		return Statement{}, err
	}
	return w.statement(VerbDelete), nil
}

// UpdateByKey builds `UPDATE {table} SET a=.., b=.. WHERE {key}={value}`.
func (b *Builder) UpdateByKey(table string, key Key, set Columns) (Statement, error) {
	return b.UpdateByKeys(table, []Key{key}, set)
}

// UpdateByKeys is UpdateByKey for a composite key. The WHERE clause is an
// AND conjunction in key order. Absent columns are dropped from set first;
// ErrEmptyUpdate is returned if none remain or if keys is empty.
func (b *Builder) UpdateByKeys(table string, keys []Key, set Columns) (Statement, error) {
	if err := checkIdentifier(table); err != nil {
		return Statement{}, err
	}
	set = set.WithoutAbsent()
	if len(set) == 0 {
		return Statement{}, fmt.Errorf("%w: %s", ErrEmptyUpdate, table)
	}
	if len(keys) == 0 {
		return Statement{}, fmt.Errorf("%w: %s has no key", ErrEmptyUpdate, table)
	}

	var w sqlWriter
	w.WriteString("UPDATE " + table + " SET ")
	for i, c := range set {
		if err := checkIdentifier(c.Name); err != nil {
			return Statement{}, err
		}
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(c.Name + "=")
		w.bind(c.Value)
	}
	w.WriteString(" WHERE ")
	if err := w.conjunction(keys); err != nil {
		return Statement{}, err
	}
	return w.statement(VerbUpdate), nil
}

// conjunction writes `a=:p1 AND b=:p2`. Match values must be present: an
// absent one would silently widen the predicate.
func (w *sqlWriter) conjunction(keys []Key) error {
	for i, k := range keys {
		if err := checkIdentifier(k.Column); err != nil {
			return err
		}
		if err := checkPresent(k.Column, k.Value); err != nil {
			return err
		}
		if i > 0 {
			w.WriteString(" AND ")
		}
		w.WriteString(k.Column + "=")
		w.bind(k.Value)
	}
	return nil
}

func checkPresent(column string, v Value) error {
	if v.IsAbsent() {
		return fmt.Errorf("%w: no value for %s", ErrInvalidValueType, column)
	}
	return nil
}
