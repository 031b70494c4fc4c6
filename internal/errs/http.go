package errs

import (
	"net/http"
)

// Codes of errors raised before a statement reaches the store.
const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeInvalidValueType       = "INVALID_VALUE_TYPE"
	CodeInvalidIdentifier      = "INVALID_IDENTIFIER"
	CodeEmptyInsert            = "EMPTY_INSERT"
	CodeEmptyUpdate            = "EMPTY_UPDATE"
	CodeEmptyDelete            = "EMPTY_DELETE"
	CodeUnsupportedAssociation = "UNSUPPORTED_ASSOCIATION"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// override lets the error middleware replace the message, for example to
// avoid leaking why a session was rejected.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusForbidden)),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code defaults to "BAD_REQUEST" when nil; errors and action are optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewValidationFailedError creates the 400 answered when request fields
// failed validation. The statement is never sent to the store.
func NewValidationFailedError(fieldErrors []FieldError) *HTTPError {
	code := CodeValidationFailed
	return NewBadRequestError("Validation failed", true, &code, fieldErrors, nil)
}

// NewQueryBuildError creates the 400 answered when a statement could not be
// built from otherwise valid input.
func NewQueryBuildError(code, message string) *HTTPError {
	return NewBadRequestError(message, false, &code, nil, nil)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 with the generic status text; the
// real cause stays in the logs.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
