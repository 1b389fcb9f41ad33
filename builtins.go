package formula

import (
	"math"
	"strings"
	"unicode/utf8"
)

// BuiltinFunc implements a builtin. Arguments have already been checked
// against the builtin's signature.
type BuiltinFunc func(args []Value) (Value, Error)

// Builtin describes a named function callable from a formula as
// `name(arg, ...)`.
type Builtin struct {
	Name string

	// Params are the kinds of the required arguments. KindAny accepts any
	// kind.
	Params []Kind

	// Optional is how many trailing Params may be left out.
	Optional int

	// Variadic, when set, allows any number of extra arguments of this kind
	// after Params.
	Variadic Kind

	// Result is the kind the builtin returns, or KindAny when it depends on
	// the arguments.
	Result Kind

	Fn BuiltinFunc
}

// Builtins is a table of builtins keyed by name.
type Builtins map[string]Builtin

// With returns a copy of the table with the given builtins added, replacing
// any existing builtins with the same names.
func (b Builtins) With(builtins ...Builtin) Builtins {
	out := make(Builtins, len(b)+len(builtins))
	for k, v := range b {
		out[k] = v
	}
	for _, v := range builtins {
		out[v.Name] = v
	}
	return out
}

func kindMatches(want, got Kind) bool {
	return want == KindAny || got == KindAny || want == got
}

// checkArity returns a type error if `count` arguments cannot be passed.
func (b Builtin) checkArity(count int) Error {
	lo := len(b.Params) - b.Optional
	hi := len(b.Params)
	if count < lo || (b.Variadic == "" && count > hi) {
		switch {
		case b.Variadic != "":
			return newTypeError(b.Name, "%s() takes at least %d arguments but got %d", b.Name, lo, count)
		case lo == hi:
			return newTypeError(b.Name, "%s() takes %d arguments but got %d", b.Name, lo, count)
		}
		return newTypeError(b.Name, "%s() takes %d to %d arguments but got %d", b.Name, lo, hi, count)
	}
	return nil
}

// paramKind returns the expected kind of argument `i`.
func (b Builtin) paramKind(i int) Kind {
	if i < len(b.Params) {
		return b.Params[i]
	}
	return b.Variadic
}

// check validates the argument values against the signature.
func (b Builtin) check(args []Value) Error {
	if err := b.checkArity(len(args)); err != nil {
		return err
	}
	for i, arg := range args {
		if want := b.paramKind(i); !kindMatches(want, arg.Kind()) {
			return newTypeError(b.Name, "%s() argument %d must be %s but got %s", b.Name, i+1, want, arg.Repr())
		}
	}
	return nil
}

func numeric(name string, fn func(float64) float64) Builtin {
	return Builtin{
		Name:   name,
		Params: []Kind{KindNum},
		Result: KindNum,
		Fn: func(args []Value) (Value, Error) {
			return Num(fn(args[0].AsNum())), nil
		},
	}
}

func textual(name string, fn func(string) string) Builtin {
	return Builtin{
		Name:   name,
		Params: []Kind{KindString},
		Result: KindString,
		Fn: func(args []Value) (Value, Error) {
			return String(fn(args[0].AsString())), nil
		},
	}
}

func predicate(name string, fn func(s, sub string) bool) Builtin {
	return Builtin{
		Name:   name,
		Params: []Kind{KindString, KindString},
		Result: KindBool,
		Fn: func(args []Value) (Value, Error) {
			return Bool(fn(args[0].AsString(), args[1].AsString())), nil
		},
	}
}

// extreme picks the smallest (dir < 0) or largest (dir > 0) number.
func extreme(name string, dir float64) Builtin {
	return Builtin{
		Name:     name,
		Params:   []Kind{KindNum},
		Variadic: KindNum,
		Result:   KindNum,
		Fn: func(args []Value) (Value, Error) {
			best := args[0].AsNum()
			for _, arg := range args[1:] {
				n := arg.AsNum()
				if math.IsNaN(n) {
					return Num(n), nil
				}
				if (n-best)*dir > 0 {
					best = n
				}
			}
			return Num(best), nil
		},
	}
}

// substr indexes by character. Negative positions count from the end.
func substr(args []Value) (Value, Error) {
	runes := []rune(args[0].AsString())
	clamp := func(i float64) int {
		n := int(i)
		if n < 0 {
			n += len(runes)
		}
		if n < 0 {
			return 0
		}
		if n > len(runes) {
			return len(runes)
		}
		return n
	}
	start := clamp(args[1].AsNum())
	end := len(runes)
	if len(args) == 3 {
		end = clamp(args[2].AsNum())
	}
	if end <= start {
		return String(""), nil
	}
	return String(string(runes[start:end])), nil
}

// toNumber implements number(x).
func toNumber(args []Value) (Value, Error) {
	switch v := args[0]; v.Kind() {
	case KindNum:
		return v, nil
	case KindBool:
		if v.AsBool() {
			return Num(1), nil
		}
		return Num(0), nil
	}
	n, ok := parseNumber(args[0].AsString())
	if !ok {
		return Value{}, newTypeError("number", "cannot convert %s to number", args[0].Repr())
	}
	return Num(n), nil
}

// DefaultBuiltins are available to every formula unless replaced with
// WithBuiltins.
var DefaultBuiltins = Builtins{}.With(
	numeric("abs", math.Abs),
	numeric("floor", math.Floor),
	numeric("ceil", math.Ceil),
	numeric("sqrt", math.Sqrt),
	Builtin{
		Name:     "round",
		Params:   []Kind{KindNum, KindNum},
		Optional: 1,
		Result:   KindNum,
		Fn: func(args []Value) (Value, Error) {
			if len(args) == 1 {
				return Num(math.Round(args[0].AsNum())), nil
			}
			mult := math.Pow(10, math.Trunc(args[1].AsNum()))
			return Num(math.Round(args[0].AsNum()*mult) / mult), nil
		},
	},
	Builtin{
		Name:   "pow",
		Params: []Kind{KindNum, KindNum},
		Result: KindNum,
		Fn: func(args []Value) (Value, Error) {
			return Num(math.Pow(args[0].AsNum(), args[1].AsNum())), nil
		},
	},
	extreme("min", -1),
	extreme("max", 1),
	Builtin{
		Name:   "len",
		Params: []Kind{KindString},
		Result: KindNum,
		Fn: func(args []Value) (Value, Error) {
			return Num(float64(utf8.RuneCountInString(args[0].AsString()))), nil
		},
	},
	textual("upper", strings.ToUpper),
	textual("lower", strings.ToLower),
	textual("trim", strings.TrimSpace),
	Builtin{
		Name:     "concat",
		Variadic: KindAny,
		Result:   KindString,
		Fn: func(args []Value) (Value, Error) {
			var sb strings.Builder
			for _, arg := range args {
				sb.WriteString(arg.String())
			}
			return String(sb.String()), nil
		},
	},
	Builtin{
		Name:     "substr",
		Params:   []Kind{KindString, KindNum, KindNum},
		Optional: 1,
		Result:   KindString,
		Fn:       substr,
	},
	predicate("contains", strings.Contains),
	predicate("startsWith", strings.HasPrefix),
	predicate("endsWith", strings.HasSuffix),
	Builtin{
		Name:   "number",
		Params: []Kind{KindAny},
		Result: KindNum,
		Fn:     toNumber,
	},
	Builtin{
		Name:   "string",
		Params: []Kind{KindAny},
		Result: KindString,
		Fn: func(args []Value) (Value, Error) {
			return String(args[0].String()), nil
		},
	},
	// Both branches are evaluated before the call, like every other argument.
	Builtin{
		Name:   "if",
		Params: []Kind{KindBool, KindAny, KindAny},
		Result: KindAny,
		Fn: func(args []Value) (Value, Error) {
			if args[0].AsBool() {
				return args[1], nil
			}
			return args[2], nil
		},
	},
)
