package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/errs"
)

// CodeQueryFailed is the client error code of a store failure that has no
// friendlier mapping.
const CodeQueryFailed = "QUERY_FAILED"

// generateErrorCode creates consistent "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	ProjectTechnology + UniqueViolation => PROJECT_TECHNOLOGY_ALREADY_EXISTS
//
// These codes are meant for machines (frontend logic, analytics), not humans.
func generateErrorCode(tableName string, errType Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(strings.Join(splitWords(tableName), "_"))
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
//
// This message is intended for clients / UI, not for logs.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		// "The referenced Technology does not exist"
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column name when one is known.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers the entity an error refers to.
//
// Priority rules:
//  1. A reference column names its target: project_id -> Project,
//     technology_name -> Technology.
//  2. Otherwise the table name: ProjectTechnology -> Project Technology.
//  3. Otherwise "record".
func getEntityName(tableName, columnName string) string {
	column := strings.ToLower(columnName)
	for _, suffix := range []string{"_id", "_name"} {
		if strings.HasSuffix(column, suffix) && len(column) > len(suffix) {
			return humanizeText(strings.TrimSuffix(column, suffix))
		}
	}

	if tableName != "" {
		return humanizeText(tableName)
	}

	return "record"
}

// humanizeText converts snake_case or PascalCase identifiers into Title Case.
//
//	"static_url"        -> "Static Url"
//	"ProjectTechnology" -> "Project Technology"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(splitWords(text), " "))
}

// splitWords splits an identifier on underscores and lower-to-upper case
// boundaries.
func splitWords(text string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()

	return words
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation tries to infer the column name from a unique constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_post_slug -> "slug"
//
//  2. "<table>_<column>_(key|ukey)"
//     Example: Post_slug_key -> "slug"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - recognised constraint violations (any driver): 400 with a friendly
//     message and a <TABLE>_<ACTION> code
//   - any other driver error: 400 QUERY_FAILED with the driver message
//   - ErrNoRows: 404
//   - other store failures (errors matching ErrQueryFailed): 400 QUERY_FAILED
//   - anything else: 500
//
// Batch failures carry the failing statement number in the message.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	prefix := ""
	var batchErr *database.BatchError
	if errors.As(err, &batchErr) {
		prefix = fmt.Sprintf("statement %d: ", batchErr.Index+1)
	}

	if sqlErr := Convert(err); sqlErr != nil {
		return handleDriverError(sqlErr, prefix)
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", false, nil)

	case errors.Is(err, ErrQueryFailed), batchErr != nil:
		code := CodeQueryFailed
		return errs.NewBadRequestError(prefix+"The query could not be completed", false, &code, nil, nil)
	}

	return errs.NewInternalServerError()
}

func handleDriverError(sqlErr *Error, prefix string) *errs.HTTPError {
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(prefix+userMessage, false, &errorCode, nil, nil)

	case UniqueViolation:
		columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
		if columnName == "" {
			columnName = sqlErr.ColumnName
		}
		if columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
		}
		return errs.NewBadRequestError(prefix+userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(prefix+userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation:
		return errs.NewBadRequestError(prefix+userMessage, true, &errorCode, nil, nil)
	}

	code := CodeQueryFailed
	return errs.NewBadRequestError(prefix+sqlErr.Message, false, &code, nil, nil)
}
