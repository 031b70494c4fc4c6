package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/query"
)

// SQLStore runs statements through database/sql for the MySQL and SQLite
// drivers, using sqlx for map scanning.
type SQLStore struct {
	DB      *sqlx.DB
	dialect *query.Dialect
	log     *zerolog.Logger
}

var _ Store = (*SQLStore)(nil)

// queryer is satisfied by both *sqlx.DB and *sqlx.Conn.
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// NewSQLStore opens and pings a MySQL or SQLite database.
//
// SQLite is limited to one open connection: an in-memory database exists
// per connection and the file format allows a single writer anyway.
func NewSQLStore(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) (*SQLStore, error) {
	dialect, err := query.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if cfg.Driver == "mysql" {
		if dsn, err = mysqlDSN(cfg.DSN); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info().Str("driver", cfg.Driver).Msg("connected to the database")
	}

	return &SQLStore{DB: db, dialect: dialect, log: logger}, nil
}

// mysqlDSN normalizes a MySQL DSN: DATETIME columns scan into time.Time and
// the connection speaks utf8mb4.
func mysqlDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	mc.ParseTime = true
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	if _, ok := mc.Params["charset"]; !ok {
		mc.Params["charset"] = "utf8mb4"
	}
	return mc.FormatDSN(), nil
}

func (s *SQLStore) Dialect() *query.Dialect { return s.dialect }

func (s *SQLStore) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *SQLStore) Exec(ctx context.Context, stmt query.Statement) (*Result, error) {
	return s.run(ctx, s.DB, stmt)
}

// ExecBatch runs the batch statement by statement on one connection.
//
// A batch is not sent as one multi-statement query: go-sql-driver/mysql only
// binds arguments to a multi-statement query by interpolating them into the
// text client side, and a single result would lose the index of the failing
// statement.
func (s *SQLStore) ExecBatch(ctx context.Context, batch query.Batch) (*Result, error) {
	result := &Result{}
	if len(batch) == 0 {
		return result, nil
	}

	conn, err := s.DB.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	for i, stmt := range batch {
		r, err := s.run(ctx, conn, stmt)
		if err != nil {
			return nil, &BatchError{Index: i, Statement: stmt, Err: err}
		}
		result.RowsAffected += r.RowsAffected
		result.Statements++
	}
	return result, nil
}

func (s *SQLStore) run(ctx context.Context, q queryer, stmt query.Statement) (*Result, error) {
	text, args, err := s.dialect.Bind(stmt)
	if err != nil {
		return nil, err
	}

	if !stmt.ReturnsRows() {
		res, err := q.ExecContext(ctx, text, args...)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		return &Result{RowsAffected: n, Statements: 1}, nil
	}

	rows, err := q.QueryxContext(ctx, text, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			// Text columns come back as []byte, which JSON would encode
			// as base64.
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		maps = append(maps, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &Result{Rows: maps, Statements: 1}, nil
}

func (s *SQLStore) Close() error {
	if s.log != nil {
		s.log.Info().Msg("closing database connection pool")
	}
	return s.DB.Close()
}
