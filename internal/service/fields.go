package service

import (
	"strings"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/lib/utils"
	"github.com/deppfellow/portfolio-api/internal/query"
)

// fieldChecks collects field errors while a request is shaped into columns.
type fieldChecks []errs.FieldError

func (c *fieldChecks) add(field, message string) {
	*c = append(*c, errs.FieldError{Field: field, Error: message})
}

// id parses an integer key. On failure it records a field error and
// returns Absent; the statement is never built in that case.
func (c *fieldChecks) id(field string, raw utils.Text) query.Value {
	i, ok := raw.Int()
	if !ok {
		c.add(field, "must be an integer")
		return query.Absent()
	}
	return query.Int(i)
}

// slug derives an identifier from a display string.
func (c *fieldChecks) slug(field, display string) string {
	s := utils.Slugify(display)
	if s == "" {
		c.add(field, "must contain a letter, a digit, '-' or '_'")
	}
	return s
}

// text is an optional trimmed text field: nil stays Absent.
func text(s *string) query.Value {
	if s == nil {
		return query.Absent()
	}
	return query.String(strings.TrimSpace(*s))
}

// flag is a form flag that defaults to false.
func flag(t *utils.Text) query.Value {
	return query.Bool(utils.ParseBoolean(t.String()))
}

// optionalFlag is a form flag that stays Absent when missing or empty.
func optionalFlag(t *utils.Text) query.Value {
	b := utils.ParseBooleanIfDefined(t)
	if b == nil {
		return query.Absent()
	}
	return query.Bool(*b)
}
