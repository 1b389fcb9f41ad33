package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCheck(t *testing.T) {
	schema := Schema{
		"n":   KindNum,
		"s":   KindString,
		"b":   KindBool,
		"any": KindAny,
	}

	cases := []struct {
		expr   string
		output Kind
		kind   ErrorKind
		name   string
		err    string
	}{
		{expr: "n * 2 + 1", output: KindNum},
		{expr: "n > 2 && b", output: KindBool},
		{expr: `s = "x"`, output: KindBool},
		{expr: "s = n", output: KindBool},
		{expr: "not b", output: KindBool},
		{expr: `"lit"`, output: KindString},
		{expr: "upper(s)", output: KindString},
		{expr: "len(s) > n", output: KindBool},
		{expr: "if(b, n, s)", output: KindAny},
		{expr: "if(b, n, s) + 1", output: KindNum},
		{expr: "any + 1", output: KindNum},
		{expr: "not any", output: KindBool},
		{expr: "abs(any)", output: KindNum},
		{expr: "missing", kind: EvalError, name: "missing", err: "expected one of [any, b, n, s]"},
		{expr: "nope()", kind: EvalError, name: "nope", err: "unknown builtin"},
		{expr: "s + 1", kind: TypeError, name: "+", err: "must be number but got string"},
		{expr: "n && b", kind: TypeError, name: "&&", err: "must be boolean but got number"},
		{expr: "s > s", kind: TypeError, name: ">", err: "must be number"},
		{expr: "not n", kind: TypeError, name: "not"},
		{expr: "abs(s)", kind: TypeError, name: "abs", err: "argument 1 must be number but got string"},
		{expr: "abs(1, 2)", kind: TypeError, name: "abs", err: "takes 1 arguments"},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			ast, err := Compile(tc.expr)
			require.NoError(t, err)

			kind, err := Check(ast, schema)
			if tc.kind != "" {
				require.Error(t, err)
				assert.Equal(t, tc.kind, err.Kind())
				assert.Equal(t, tc.name, err.Name())
				assert.Contains(t, err.Error(), tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.output, kind)
		})
	}
}

func TestTypeCheckMatchesInterpreter(t *testing.T) {
	env := Environment{"n": Num(2), "s": String("x"), "b": Bool(true)}
	schema := SchemaOf(env)
	assert.Equal(t, Schema{"n": KindNum, "s": KindString, "b": KindBool}, schema)

	for _, expr := range []string{"n * n", "s = n", "b || n > 1", "concat(s, n)", "s + n", "not s"} {
		ast, err := Compile(expr)
		require.NoError(t, err)

		kind, checkErr := Check(ast, schema)
		v, runErr := Interpret(ast, env)
		if runErr != nil {
			require.Error(t, checkErr, expr)
			assert.Equal(t, runErr.Kind(), checkErr.Kind(), expr)
			continue
		}
		require.NoError(t, checkErr, expr)
		assert.Equal(t, v.Kind(), kind, expr)
	}
}

func TestTypeCheckCustomBuiltins(t *testing.T) {
	ast, err := Compile("twice(n)")
	require.NoError(t, err)

	_, err = Check(ast, Schema{"n": KindNum})
	require.Error(t, err)

	twice := Builtin{Name: "twice", Params: []Kind{KindNum}, Result: KindNum}
	kind, err := Check(ast, Schema{"n": KindNum}, WithBuiltins(DefaultBuiltins.With(twice)))
	require.NoError(t, err)
	assert.Equal(t, KindNum, kind)
}
