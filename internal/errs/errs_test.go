package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBadRequestErrorDefaultsCode(t *testing.T) {
	err := NewBadRequestError("nope", false, nil, nil, nil)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)

	code := "EMPTY_INSERT"
	err = NewBadRequestError("nope", false, &code, nil, nil)
	assert.Equal(t, "EMPTY_INSERT", err.Code)
}

func TestNewValidationFailedError(t *testing.T) {
	fields := []FieldError{{Field: "title", Error: "is required"}}
	err := NewValidationFailedError(fields)
	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, fields, err.Errors)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestHTTPErrorIsMatchesAnyHTTPError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewForbiddenError("no", false))
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.ErrorAs(t, wrapped, &httpErr)
	assert.Equal(t, "FORBIDDEN", httpErr.Code)

	copied := httpErr.WithMessage("still no")
	assert.Equal(t, "still no", copied.Message)
	assert.Equal(t, "no", httpErr.Message)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", NewInternalServerError().Code)
}
