package repository

import (
	"context"
	"errors"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/sqlerr"
)

// QueryError is a failure reported by the store for a well-formed statement.
// It wraps the raw driver error; sqlerr.HandleError classifies it.
type QueryError struct {
	// SQL is the failed statement or batch with its values inlined.
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return "query failed: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is makes every QueryError match sqlerr.ErrQueryFailed.
func (e *QueryError) Is(target error) bool { return target == sqlerr.ErrQueryFailed }

// BuildError converts a builder error into the client error answered for it.
// Errors that did not come from the builders are returned unchanged.
func BuildError(err error) error {
	codes := []struct {
		target error
		code   string
	}{
		{query.ErrInvalidValueType, errs.CodeInvalidValueType},
		{query.ErrInvalidIdentifier, errs.CodeInvalidIdentifier},
		{query.ErrEmptyInsert, errs.CodeEmptyInsert},
		{query.ErrEmptyUpdate, errs.CodeEmptyUpdate},
		{query.ErrEmptyDelete, errs.CodeEmptyDelete},
		{query.ErrUnsupportedAssociation, errs.CodeUnsupportedAssociation},
	}
	for _, c := range codes {
		if errors.Is(err, c.target) {
			return errs.NewQueryBuildError(c.code, err.Error())
		}
	}
	return err
}

// BuildFunc builds the statement or batch an operation runs.
type BuildFunc func(b *query.Builder) (query.Executable, error)

// Executor is the single path from a built statement to the store.
type Executor struct {
	store              database.Store
	builder            *query.Builder
	logger             *zerolog.Logger
	slowQueryThreshold time.Duration
}

// NewExecutor creates an Executor over store. A zero slowQueryThreshold
// disables slow statement warnings.
func NewExecutor(store database.Store, logger *zerolog.Logger, slowQueryThreshold time.Duration) *Executor {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Executor{
		store:              store,
		builder:            query.NewBuilder(store.Dialect()),
		logger:             logger,
		slowQueryThreshold: slowQueryThreshold,
	}
}

// Builder returns the builder bound to the store's dialect.
func (e *Executor) Builder() *query.Builder { return e.builder }

// Execute checks fieldErrors, then builds, then runs. Nothing is built when
// fieldErrors is non-empty, and nothing reaches the store when building
// fails.
func (e *Executor) Execute(ctx context.Context, build BuildFunc, fieldErrors []errs.FieldError) (*database.Result, error) {
	if len(fieldErrors) > 0 {
		return nil, errs.NewValidationFailedError(fieldErrors)
	}

	exec, err := build(e.builder)
	if err != nil {
		return nil, BuildError(err)
	}

	return e.Run(ctx, exec, nil)
}

// Run sends exec to the store.
//
// Non-empty fieldErrors short-circuit with a ValidationFailed error without
// touching the store. An empty batch succeeds without touching the store.
// Store failures come back as *QueryError.
func (e *Executor) Run(ctx context.Context, exec query.Executable, fieldErrors []errs.FieldError) (*database.Result, error) {
	if len(fieldErrors) > 0 {
		return nil, errs.NewValidationFailedError(fieldErrors)
	}

	var (
		result *database.Result
		err    error
	)

	start := time.Now()
	switch x := exec.(type) {
	case query.Statement:
		seg := e.segment(ctx, x)
		result, err = e.store.Exec(ctx, x)
		seg.End()
	default:
		batch := query.Batch(exec.Statements())
		if len(batch) == 0 {
			return &database.Result{}, nil
		}
		result, err = e.store.ExecBatch(ctx, batch)
	}
	elapsed := time.Since(start)
	logger := e.loggerFor(ctx)

	if ev := logger.Debug(); ev.Enabled() {
		ev.Str("sql", inline(exec)).
			Dur("duration", elapsed).
			Int("statements", len(exec.Statements())).
			Msg("query executed")
	}

	if e.slowQueryThreshold > 0 && elapsed > e.slowQueryThreshold {
		logger.Warn().
			Str("sql", inline(exec)).
			Dur("duration", elapsed).
			Dur("threshold", e.slowQueryThreshold).
			Msg("slow query")
	}

	if err != nil {
		return nil, &QueryError{SQL: inline(exec), Err: err}
	}

	return result, nil
}

// loggerFor prefers the request logger carried by ctx.
func (e *Executor) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return e.logger
}

// segment records a New Relic datastore segment for stores without a driver
// integration. pgx statements are already traced by nrpgx5.
func (e *Executor) segment(ctx context.Context, stmt query.Statement) *newrelic.DatastoreSegment {
	txn := newrelic.FromContext(ctx)
	seg := &newrelic.DatastoreSegment{
		StartTime: txn.StartSegmentNow(),
		Operation: stmt.Verb.String(),
	}

	switch e.store.Dialect() {
	case query.MySQL:
		seg.Product = newrelic.DatastoreMySQL
	case query.SQLite:
		seg.Product = newrelic.DatastoreSQLite
	default:
		return nil
	}

	if text, _, err := e.store.Dialect().Bind(stmt); err == nil {
		seg.ParameterizedQuery = text
	}
	return seg
}

func inline(exec query.Executable) string {
	switch x := exec.(type) {
	case query.Statement:
		return x.MustInline()
	default:
		text, err := query.Batch(exec.Statements()).Inline()
		if err != nil {
			return "<batch>"
		}
		return text
	}
}
