package query

import "errors"

// Builder errors. They are returned before any SQL reaches a store.
var (
	ErrInvalidValueType = errors.New("invalid value type")

	// ErrInvalidIdentifier is returned for table or column names that are
	// not plain SQL identifiers. Identifiers are interpolated, never bound.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	ErrEmptyInsert = errors.New("insert has no columns")
	ErrEmptyUpdate = errors.New("update has no columns to set")

	// ErrEmptyDelete guards against a DELETE without a WHERE clause.
	ErrEmptyDelete = errors.New("delete has no match columns")

	ErrUnsupportedAssociation = errors.New("unsupported association")
)
