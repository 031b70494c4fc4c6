package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-api/internal/config"
	loggerConfig "github.com/deppfellow/portfolio-api/internal/logger"
	"github.com/deppfellow/portfolio-api/internal/query"
)

// Store executes built statements against one relational database.
//
// Both implementations bind values through their query.Dialect; no value is
// ever formatted into SQL text on the way to the driver.
type Store interface {
	// Exec runs one statement. Selects answer with Rows, other verbs with
	// RowsAffected.
	Exec(ctx context.Context, stmt query.Statement) (*Result, error)

	// ExecBatch runs the statements in order. Postgres sends the batch in
	// one round trip; MySQL and SQLite send one statement at a time on a
	// single connection. An empty batch succeeds without touching the
	// database. The first failing statement stops the batch and is reported
	// as a *BatchError; statements before it are not rolled back by the store
	// itself.
	ExecBatch(ctx context.Context, batch query.Batch) (*Result, error)

	Dialect() *query.Dialect
	Ping(ctx context.Context) error
	Close() error
}

// Result is the outcome of a statement or a batch.
type Result struct {
	// Rows holds the result set of a select, one map per row keyed by column
	// name. It is never nil for a select.
	Rows []map[string]any

	RowsAffected int64

	// Statements is the number of statements that ran.
	Statements int
}

// BatchError attributes a batch failure to the statement that caused it.
type BatchError struct {
	Index     int
	Statement query.Statement
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch statement %d: %v", e.Index+1, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Open connects to the store selected by cfg.Database.Driver.
func Open(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (Store, error) {
	switch cfg.Database.Driver {
	case "postgres", "":
		db, err := New(cfg, logger, loggerService)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "mysql", "sqlite":
		s, err := NewSQLStore(context.Background(), cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}
