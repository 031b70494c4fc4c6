package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/sqlerr"
)

// countingStore records how often the store was reached.
type countingStore struct {
	execs   int
	batches int
	err     error
}

func (s *countingStore) Exec(ctx context.Context, stmt query.Statement) (*database.Result, error) {
	s.execs++
	if s.err != nil {
		return nil, s.err
	}
	if stmt.ReturnsRows() {
		return &database.Result{Rows: []map[string]any{{"id": int64(1)}}, Statements: 1}, nil
	}
	return &database.Result{RowsAffected: 1, Statements: 1}, nil
}

func (s *countingStore) ExecBatch(ctx context.Context, batch query.Batch) (*database.Result, error) {
	s.batches++
	if s.err != nil {
		return nil, &database.BatchError{Index: 0, Statement: batch[0], Err: s.err}
	}
	return &database.Result{RowsAffected: int64(len(batch)), Statements: len(batch)}, nil
}

func (s *countingStore) Dialect() *query.Dialect        { return query.MySQL }
func (s *countingStore) Ping(ctx context.Context) error { return nil }
func (s *countingStore) Close() error                   { return nil }

func httpError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestRunWithFieldErrorsNeverTouchesStore(t *testing.T) {
	store := &countingStore{}
	exec := NewExecutor(store, nil, 0)
	stmt, err := exec.Builder().SelectAll("Page")
	require.NoError(t, err)

	fields := []errs.FieldError{{Field: "name", Error: "is required"}}
	_, err = exec.Run(context.Background(), stmt, fields)

	httpErr := httpError(t, err)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	assert.Equal(t, fields, httpErr.Errors)
	assert.Zero(t, store.execs)
	assert.Zero(t, store.batches)
}

func TestExecuteSkipsBuildOnFieldErrors(t *testing.T) {
	store := &countingStore{}
	exec := NewExecutor(store, nil, 0)

	built := false
	_, err := exec.Execute(context.Background(), func(b *query.Builder) (query.Executable, error) {
		built = true
		return b.SelectAll("Page")
	}, []errs.FieldError{{Field: "id", Error: "must be an integer"}})

	require.Error(t, err)
	assert.False(t, built)
	assert.Zero(t, store.execs)
}

func TestExecuteMapsBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build BuildFunc
		code  string
	}{
		{
			name: "empty insert",
			build: func(b *query.Builder) (query.Executable, error) {
				return b.Insert("Demo", query.Columns{{Name: "a", Value: query.Absent()}})
			},
			code: errs.CodeEmptyInsert,
		},
		{
			name: "empty update",
			build: func(b *query.Builder) (query.Executable, error) {
				return b.UpdateByKey("Demo", query.Key{Column: "id", Value: query.Int(1)}, nil)
			},
			code: errs.CodeEmptyUpdate,
		},
		{
			name: "empty delete",
			build: func(b *query.Builder) (query.Executable, error) {
				return b.DeleteWhere("Demo", nil)
			},
			code: errs.CodeEmptyDelete,
		},
		{
			name: "unsupported association",
			build: func(b *query.Builder) (query.Executable, error) {
				return b.AssociationsOf("Page", "Technology", query.Absent())
			},
			code: errs.CodeUnsupportedAssociation,
		},
		{
			name: "invalid identifier",
			build: func(b *query.Builder) (query.Executable, error) {
				return b.SelectAll("Page; DROP TABLE Page")
			},
			code: errs.CodeInvalidIdentifier,
		},
		{
			name: "invalid value",
			build: func(b *query.Builder) (query.Executable, error) {
				return b.SelectWhere("Page", "name", query.Absent())
			},
			code: errs.CodeInvalidValueType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{}
			_, err := NewExecutor(store, nil, 0).Execute(context.Background(), tt.build, nil)

			httpErr := httpError(t, err)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Zero(t, store.execs+store.batches)
		})
	}
}

func TestRunEmptyBatchIsNoOp(t *testing.T) {
	store := &countingStore{}
	res, err := NewExecutor(store, nil, 0).Run(context.Background(), query.Batch{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Statements)
	assert.Zero(t, store.batches)
}

func TestRunWrapsStoreFailures(t *testing.T) {
	driverErr := errors.New("connection refused")
	store := &countingStore{err: driverErr}
	exec := NewExecutor(store, nil, 0)

	stmt, err := exec.Builder().SelectWhere("Post", "slug", query.String("it's"))
	require.NoError(t, err)

	_, err = exec.Run(context.Background(), stmt, nil)
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.ErrorIs(t, err, driverErr)
	assert.ErrorIs(t, err, sqlerr.ErrQueryFailed)
	assert.Equal(t, "SELECT * FROM Post WHERE slug='it''s'", queryErr.SQL)
	assert.Equal(t, 1, store.execs)

	batch, err := exec.Builder().TagUpsert(query.PostCategory, "go", query.Int(1))
	require.NoError(t, err)
	_, err = exec.Run(context.Background(), batch, nil)
	var batchErr *database.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, store.batches)
}
