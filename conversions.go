package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

func fromNumber[T number](n T) Value {
	return Num(float64(n))
}

// ValueOf converts a value received from the data host into a formula
// value. Booleans and the strings "true" and "false" become booleans, Go
// numbers and numeric strings become numbers, and anything else becomes its
// string form. It returns false for nil, which has no formula equivalent.
func ValueOf(raw interface{}) (Value, bool) {
	switch v := raw.(type) {
	case nil:
		return Value{}, false
	case Value:
		return v, true
	case bool:
		return Bool(v), true
	case float64:
		return fromNumber(v), true
	case float32:
		return fromNumber(v), true
	case int:
		return fromNumber(v), true
	case int8:
		return fromNumber(v), true
	case int16:
		return fromNumber(v), true
	case int32:
		return fromNumber(v), true
	case int64:
		return fromNumber(v), true
	case uint:
		return fromNumber(v), true
	case uint8:
		return fromNumber(v), true
	case uint16:
		return fromNumber(v), true
	case uint32:
		return fromNumber(v), true
	case uint64:
		return fromNumber(v), true
	case string:
		return parseCell(v), true
	case []byte:
		return parseCell(string(v)), true
	case fmt.Stringer:
		return parseCell(v.String()), true
	}
	return String(fmt.Sprintf("%v", raw)), true
}

// parseCell interprets the text of a table cell.
func parseCell(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if n, ok := parseNumber(s); ok {
		return Num(n)
	}
	return String(s)
}

// parseNumber accepts decimal numbers with surrounding whitespace as well as
// "Infinity" and "-Infinity". Empty strings are not numbers.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	// ParseFloat also accepts "inf", "nan" and hex floats, which a table cell
	// holding those words does not mean.
	for _, r := range s {
		if !(isDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E') {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
