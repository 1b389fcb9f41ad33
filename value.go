package formula

import (
	"math"
	"strconv"
)

// Kind describes the type of a Value.
type Kind string

const (
	// KindAny is never the kind of a Value. It is used in builtin signatures
	// and by the type checker to mean "any kind".
	KindAny    Kind = "any"
	KindNum    Kind = "number"
	KindBool   Kind = "boolean"
	KindString Kind = "string"
)

// Value is the result of evaluating a formula: a number, a boolean or a
// string. The zero Value is the number 0.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  string
}

// Num creates a number value.
func Num(n float64) Value {
	return Value{kind: KindNum, num: n}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// String creates a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindNum
	}
	return v.kind
}

func (v Value) IsNum() bool    { return v.Kind() == KindNum }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsString() bool { return v.kind == KindString }

// AsNum returns the number content, or 0 for other kinds.
func (v Value) AsNum() float64 { return v.num }

// AsBool returns the boolean content, or false for other kinds.
func (v Value) AsBool() bool { return v.b }

// AsString returns the string content, or "" for other kinds. Use String for
// the display text of any value.
func (v Value) AsString() string { return v.str }

// Interface returns the content as a plain Go value: float64, bool or string.
func (v Value) Interface() interface{} {
	switch v.Kind() {
	case KindBool:
		return v.b
	case KindString:
		return v.str
	}
	return v.num
}

// String returns the display text of the value as it would appear in a table
// cell. Whole numbers have no decimal point; infinities and NaN are spelled
// out.
func (v Value) String() string {
	switch v.Kind() {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.str
	}
	return formatNumber(v.num)
}

// Repr is like String but quotes strings, for use in diagnostics.
func (v Value) Repr() string {
	if v.kind == KindString {
		return strconv.Quote(v.str)
	}
	return v.String()
}

// Equal reports whether two values are of the same kind with the same
// content. Numbers compare with float semantics, so NaN is never equal to
// itself.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.str == other.str
	}
	return v.num == other.num
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
