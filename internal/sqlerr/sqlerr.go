// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the PostgreSQL, MySQL and SQLite
// drivers and converts them into user-friendly messages (e.g., converting
// a "foreign key violation" into a "Bad Request" error).
package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrQueryFailed marks an error raised by a store after a statement reached
// it. Errors matching it with errors.Is are reported as QUERY_FAILED when no
// driver detail can be recovered.
var ErrQueryFailed = errors.New("query failed")

// Code is the driver-independent class of a database error.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	ExclusionViolation        Code = "exclusion_violation"
	SyntaxError               Code = "syntax_error"
	UndefinedTable            Code = "undefined_table"
	UndefinedColumn           Code = "undefined_column"
	InvalidTextRepresentation Code = "invalid_text_representation"
	StringDataRightTruncation Code = "string_data_right_truncation"
	SerializationFailure      Code = "serialization_failure"
	DeadlockDetected          Code = "deadlock_detected"
)

// Severity mirrors the PostgreSQL severity levels. MySQL and SQLite errors
// are always SeverityError.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a database error normalized across drivers.
type Error struct {
	Code     Code
	Severity Severity

	// DatabaseCode is the driver's own code: the SQLSTATE for PostgreSQL,
	// the error number for MySQL and the extended result code for SQLite.
	DatabaseCode string
	Message      string

	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "42601":
		return SyntaxError
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "22P02":
		return InvalidTextRepresentation
	case "22001":
		return StringDataRightTruncation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	}
	return Other
}

// MapSeverity maps a PostgreSQL severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	}
	return SeverityError
}

// mapMySQLCode maps a MySQL server error number to a Code.
func mapMySQLCode(number uint16) Code {
	switch number {
	case 1048, 1364:
		return NotNullViolation
	case 1216, 1451, 1452:
		return ForeignKeyViolation
	case 1062, 1586:
		return UniqueViolation
	case 3819:
		return CheckViolation
	case 1064:
		return SyntaxError
	case 1146:
		return UndefinedTable
	case 1054:
		return UndefinedColumn
	case 1366:
		return InvalidTextRepresentation
	case 1406:
		return StringDataRightTruncation
	case 1213:
		return DeadlockDetected
	}
	return Other
}

// mapSQLiteCode maps a SQLite extended result code to a Code.
func mapSQLiteCode(code int) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

var (
	mysqlColumnPattern = regexp.MustCompile("[Cc]olumn '([^']+)'")
	mysqlKeyPattern    = regexp.MustCompile(`for key '(?:([^.']+)\.)?([^']+)'`)
	mysqlFKPattern     = regexp.MustCompile("`[^`]+`\\.`([^`]+)`, CONSTRAINT `([^`]+)`(?: FOREIGN KEY \\(`([^`]+)`\\))?")
)

// ConvertMySQLError converts a go-sql-driver MySQL error into an Error.
// MySQL reports table and column only inside the message, so they are
// recovered from it where the message format allows.
func ConvertMySQLError(src *mysql.MySQLError) *Error {
	e := &Error{
		Code:         mapMySQLCode(src.Number),
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(int(src.Number)),
		Message:      src.Message,
		driverErr:    src,
	}

	switch e.Code {
	case NotNullViolation:
		if m := mysqlColumnPattern.FindStringSubmatch(src.Message); m != nil {
			e.ColumnName = m[1]
		}
	case UniqueViolation:
		if m := mysqlKeyPattern.FindStringSubmatch(src.Message); m != nil {
			e.TableName, e.ConstraintName = m[1], m[2]
		}
	case ForeignKeyViolation:
		if m := mysqlFKPattern.FindStringSubmatch(src.Message); m != nil {
			e.TableName, e.ConstraintName, e.ColumnName = m[1], m[2], m[3]
		}
	}

	return e
}

var sqliteConstraintPattern = regexp.MustCompile(`(UNIQUE|NOT NULL|CHECK|FOREIGN KEY) constraint failed(?:: ([A-Za-z0-9_]+)(?:\.([A-Za-z0-9_]+))?)?`)

// ConvertSQLiteError converts a modernc SQLite error into an Error.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	e := &Error{
		Code:         mapSQLiteCode(src.Code()),
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}

	m := sqliteConstraintPattern.FindStringSubmatch(src.Error())
	if m == nil {
		return e
	}

	// Without extended result codes only the message tells the classes apart.
	if e.Code == Other {
		switch m[1] {
		case "UNIQUE":
			e.Code = UniqueViolation
		case "NOT NULL":
			e.Code = NotNullViolation
		case "CHECK":
			e.Code = CheckViolation
		case "FOREIGN KEY":
			e.Code = ForeignKeyViolation
		}
	}

	switch {
	case m[3] != "":
		e.TableName, e.ColumnName = m[2], m[3]
	case m[1] == "CHECK":
		e.ConstraintName = m[2]
	}

	return e
}

// Convert extracts a driver error from err's chain and normalizes it.
// It returns nil when err carries no driver error.
func Convert(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return ConvertMySQLError(mysqlErr)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return ConvertSQLiteError(sqliteErr)
	}

	return nil
}

// ErrCode reports the Code of the driver error in err's chain, or Other.
func ErrCode(err error) Code {
	if sqlErr := Convert(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}
