package query

import (
	"fmt"
	"strings"

	"github.com/mikeschinkel/go-sqlparams"
)

// Verb is the kind of SQL statement a builder produced.
type Verb uint8

const (
	VerbSelect Verb = iota + 1
	VerbInsert
	VerbUpdate
	VerbDelete
)

func (v Verb) String() string {
	switch v {
	case VerbSelect:
		return "select"
	case VerbInsert:
		return "insert"
	case VerbUpdate:
		return "update"
	case VerbDelete:
		return "delete"
	}
	return "unknown"
}

// Statement is one SQL statement with its values kept apart from the text.
//
// Text uses generic :p1, :p2, ... placeholders numbered in the order the
// values appear in Args. A Dialect rewrites them into the driver's own
// placeholder syntax; Inline renders them as literals.
type Statement struct {
	Verb Verb
	Text string
	Args []Value
}

// Executable is anything the store can run: a single Statement or a Batch.
type Executable interface {
	Statements() []Statement
}

func (s Statement) Statements() []Statement { return []Statement{s} }

// ReturnsRows reports whether the statement produces a result set.
func (s Statement) ReturnsRows() bool { return s.Verb == VerbSelect }

// Inline renders the statement with every value formatted as a SQL literal,
// e.g. `DELETE FROM Demo WHERE id=5`. The result is meant for logs and
// tests; stores always execute the bound form.
func (s Statement) Inline() (string, error) {
	literals := make([]string, len(s.Args))
	for i, arg := range s.Args {
		lit, err := FormatValue(arg)
		if err != nil {
			return "", fmt.Errorf("arg %d: %w", i+1, err)
		}
		literals[i] = lit
	}

	parsed, err := sqlparams.ParseSQL(sqlparams.SQLQuery(s.Text), func(i int) string {
		if i < 1 || i > len(literals) {
			return ""
		}
		return literals[i-1]
	})
	if err != nil {
		return "", err
	}
	if n := len(parsed.Parameters()); n != len(s.Args) {
		return "", fmt.Errorf("statement has %d placeholders for %d args", n, len(s.Args))
	}
	return string(parsed.SQL), nil
}

// MustInline is Inline for statements known to be well formed. It returns the
// raw text when rendering fails so it is safe to use in log fields.
func (s Statement) MustInline() string {
	text, err := s.Inline()
	if err != nil {
		return s.Text
	}
	return text
}

// sqlWriter accumulates statement text and its bound values.
type sqlWriter struct {
	strings.Builder
	args []Value
}

func (w *sqlWriter) bind(v Value) {
	w.args = append(w.args, v)
	fmt.Fprintf(w, ":p%d", len(w.args))
}

func (w *sqlWriter) statement(verb Verb) Statement {
	return Statement{Verb: verb, Text: w.String(), Args: w.args}
}
