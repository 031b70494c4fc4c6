package query

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind enumerates the scalar shapes a column value can take.
type Kind uint8

const (
	// KindAbsent marks a column that was not supplied. Builders drop it
	// before emitting INSERT and UPDATE statements.
	KindAbsent Kind = iota
	KindNull
	KindString
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single column value. The zero Value is Absent.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func Absent() Value { return Value{} }
func Null() Value { return Value{kind: KindNull} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsEmptyString reports whether v is a zero-length string.
func (v Value) IsEmptyString() bool {
	return v.kind == KindString && v.s == ""
}

// Arg returns the value in the form a database driver binds.
// Absent and Null both bind as SQL NULL.
func (v Value) Arg() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	}
	return nil
}

func (v Value) String() string {
	lit, err := FormatValue(v)
	if err != nil {
		return "<" + v.kind.String() + ">"
	}
	return lit
}

// ValueOf converts a Go scalar into a Value.
//
// nil becomes Null and a nil pointer becomes Absent. Every other shape that
// is not a scalar is rejected with ErrInvalidValueType.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidValueType, t.String())
		}
		return floatValue(f)
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return Absent(), nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d overflows int64", ErrInvalidValueType, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return floatValue(rv.Float())
	}

	return Value{}, fmt.Errorf("%w: %T", ErrInvalidValueType, x)
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %v has no SQL literal", ErrInvalidValueType, f)
	}
	return Float(f), nil
}

// FormatValue renders v as a SQL literal. Strings get their single quotes
// doubled and are wrapped in single quotes; numbers and booleans are written
// unquoted.
func FormatValue(v Value) (string, error) {
	switch v.kind {
	case KindString:
		return "'" + strings.ReplaceAll(v.s, "'", "''") + "'", nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindNull:
		return "NULL", nil
	}
	return "", fmt.Errorf("%w: %s value has no SQL literal", ErrInvalidValueType, v.kind)
}
