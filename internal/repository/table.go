package repository

import (
	"context"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/query"
)

// Table runs the single-table operations against one fixed table.
type Table struct {
	name string
	exec *Executor
}

func NewTable(name string, exec *Executor) *Table {
	return &Table{name: name, exec: exec}
}

func (t *Table) Name() string { return t.name }

// All selects every row.
func (t *Table) All(ctx context.Context) (*database.Result, error) {
	return t.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.SelectAll(t.name)
	}, nil)
}

// Where selects the rows whose column equals value.
func (t *Table) Where(ctx context.Context, column string, value query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return t.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.SelectWhere(t.name, column, value)
	}, fieldErrors)
}

// Insert writes one row. Absent columns are left to their defaults.
func (t *Table) Insert(ctx context.Context, cols query.Columns, fieldErrors []errs.FieldError) (*database.Result, error) {
	return t.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.Insert(t.name, cols)
	}, fieldErrors)
}

// Update sets cols on the row identified by key.
func (t *Table) Update(ctx context.Context, key query.Key, cols query.Columns, fieldErrors []errs.FieldError) (*database.Result, error) {
	return t.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.UpdateByKey(t.name, key, cols)
	}, fieldErrors)
}

// Delete removes the rows matching every column of match.
func (t *Table) Delete(ctx context.Context, match query.Columns, fieldErrors []errs.FieldError) (*database.Result, error) {
	return t.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.DeleteWhere(t.name, match)
	}, fieldErrors)
}
