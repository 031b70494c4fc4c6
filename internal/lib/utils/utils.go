// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific domain.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var unsafeSlugChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// Slugify turns a display string into an identifier safe for URLs and
// primary keys: lowercased, spaces become '-', and everything outside
// [a-zA-Z0-9-_] is dropped.
//
//	"Hello, World!" -> "hello-world"
func Slugify(input string) string {
	return unsafeSlugChars.ReplaceAllString(strings.ReplaceAll(strings.ToLower(input), " ", "-"), "")
}

// ParseBoolean reads a loosely typed form flag. "", "false" and "0" (any
// case, surrounding space ignored) are false; every other value is true.
func ParseBoolean(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "false", "0":
		return false
	}
	return true
}

// ParseBooleanIfDefined is ParseBoolean for optional fields: a missing or
// empty input yields nil so an update leaves the column alone.
func ParseBooleanIfDefined(input *Text) *bool {
	if input == nil || *input == "" {
		return nil
	}
	b := ParseBoolean(string(*input))
	return &b
}

// Text is a request field that accepts a JSON string, number or boolean and
// keeps its textual form, so JSON and form-encoded bodies bind alike.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	raw := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(raw, []byte("true")), bytes.Equal(raw, []byte("false")):
		*t = Text(raw)
		return nil
	case json.Valid(raw):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			*t = Text(n.String())
			return nil
		}
	}

	return fmt.Errorf("expected a string, number or boolean, got %s", raw)
}

// String returns the text, or "" for a nil field.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// Int parses the text as a base-10 integer.
func (t *Text) Int() (int64, bool) {
	if t == nil {
		return 0, false
	}
	i, err := strconv.ParseInt(strings.TrimSpace(string(*t)), 10, 64)
	return i, err == nil
}
