// Package formula implements the formula language used to build, transform
// and filter table columns. Formulas such as `A * A + B * B` or
// `Year >= 2000 && Country = "US"` are lexed and parsed once, then evaluated
// against each row of a dataset.
package formula

import (
	"io"
	"log/slog"
)

// Compile lexes and parses a formula and returns the abstract syntax tree.
// The tree can be evaluated any number of times with Interpret.
func Compile(source string) (*Node, Error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// EvalOption configures Evaluate and EvaluateRecords.
type EvalOption func(*evalConfig)

type evalConfig struct {
	logger  *slog.Logger
	options []InterpreterOption
}

// WithLogger logs compile and row failures at debug level.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(c *evalConfig) {
		c.logger = logger
	}
}

// WithInterpreterOptions passes options such as WithBuiltins to the
// interpreter used for every row.
func WithInterpreterOptions(options ...InterpreterOption) EvalOption {
	return func(c *evalConfig) {
		c.options = append(c.options, options...)
	}
}

// Evaluate compiles a formula once and evaluates it against each row,
// returning one value per row.
//
// Lex and parse errors are returned as is, since the formula is invalid
// regardless of data. Evaluation stops at the first failing row, which is
// reported as a *RowError carrying the row index. No row is ever given a
// default value in place of an error.
func Evaluate(source string, rows []Environment, opts ...EvalOption) ([]Value, Error) {
	cfg := &evalConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger.With(slog.String("formula", source))

	ast, err := Compile(source)
	if err != nil {
		logger.Debug("formula failed to compile", slog.String("kind", string(err.Kind())), slog.String("error", err.Error()))
		return nil, err
	}

	i := NewInterpreter(ast, cfg.options...)
	values := make([]Value, len(rows))
	for idx, env := range rows {
		v, err := i.Run(env)
		if err != nil {
			logger.Debug("formula failed for row", slog.Int("row", idx), slog.String("kind", string(err.Kind())), slog.String("error", err.Error()))
			return nil, &RowError{Row: idx, Err: err}
		}
		values[idx] = v
	}
	return values, nil
}

// EvaluateRecords is like Evaluate but takes raw data records, converting
// each with NewEnvironment.
func EvaluateRecords(source string, records []map[string]interface{}, opts ...EvalOption) ([]Value, Error) {
	rows := make([]Environment, len(records))
	for i, r := range records {
		rows[i] = NewEnvironment(r)
	}
	return Evaluate(source, rows, opts...)
}

// CheckOutputs verifies that every value is of the wanted kind, for example
// that a filter predicate produced booleans. KindAny accepts every value. The
// first mismatch is returned as a *RowError wrapping a type error.
func CheckOutputs(values []Value, want Kind) Error {
	if want == KindAny {
		return nil
	}
	for idx, v := range values {
		if v.Kind() != want {
			return &RowError{
				Row: idx,
				Err: newTypeError("", "expected formula to evaluate to %s, but it evaluated to %s", want, v.Repr()),
			}
		}
	}
	return nil
}
