package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielgtaylor/formula"
	"github.com/fatih/color"
	"github.com/lmorg/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// run executes the root command with the given arguments.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	checkFlags.schema = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseKind(t *testing.T) {
	cases := map[string]formula.Kind{
		"number":  formula.KindNum,
		"NUM":     formula.KindNum,
		"boolean": formula.KindBool,
		"bool":    formula.KindBool,
		"string":  formula.KindString,
		"any":     formula.KindAny,
		"":        formula.KindAny,
	}
	for input, want := range cases {
		got, err := parseKind(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseKind("date")
	assert.ErrorContains(t, err, `invalid type "date"`)
}

func TestParseSchema(t *testing.T) {
	schema, err := parseSchema([]string{"Name=string", "Age=number", "Flag=bool"})
	require.NoError(t, err)
	assert.Equal(t, formula.Schema{"Name": formula.KindString, "Age": formula.KindNum, "Flag": formula.KindBool}, schema)

	_, err = parseSchema([]string{"Name"})
	assert.ErrorContains(t, err, "expected name=type")

	_, err = parseSchema([]string{"=number"})
	assert.Error(t, err)

	_, err = parseSchema([]string{"Name=date"})
	assert.Error(t, err)
}

func TestWriteValues(t *testing.T) {
	values := []formula.Value{formula.Num(1.5), formula.String("a"), formula.Bool(true), formula.Num(math.Inf(1)), formula.Num(math.NaN())}

	var text bytes.Buffer
	require.NoError(t, writeValues(&text, "text", values))
	assert.Equal(t, "1: 1.5\n2: \"a\"\n3: true\n4: Infinity\n5: NaN\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeValues(&js, "json", values))
	assert.JSONEq(t, `[1.5, "a", true, "Infinity", "NaN"]`, js.String())

	assert.Error(t, writeValues(&js, "xml", values))
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		logger, err := newLogger(format, true)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	_, err := newLogger("xml", false)
	assert.Error(t, err)
}

func TestEvalCommand(t *testing.T) {
	data := writeDataset(t, "rows.csv", "A,B\n3,4\n1,1\n")

	out, err := run(t, "eval", "A * A + B * B", "--data", data, "--type", "number", "--format", "text", "--ast=false")
	require.NoError(t, err)
	assert.Equal(t, "1: 25\n2: 2\n", out)

	out, err = run(t, "eval", "A > B", "--data", data, "--type", "boolean", "--format", "json", "--ast")
	require.NoError(t, err)
	lines := strings.SplitN(out, "\n", 2)
	assert.Equal(t, "(> A B)", lines[0])
	assert.JSONEq(t, `[false, false]`, lines[1])

	out, err = run(t, "eval", "1 + 1", "--data", "", "--type", "any", "--format", "text", "--ast=false")
	require.NoError(t, err)
	assert.Equal(t, "1: 2\n", out)
}

func TestEvalCommandErrors(t *testing.T) {
	data := writeDataset(t, "rows.json", `[{"A": 1}, {"A": "x"}]`)

	_, err := run(t, "eval", "A * 2", "--data", data, "--type", "any", "--format", "text", "--ast=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `operands of * must be number but got "x"`)
	assert.Contains(t, err.Error(), "(at case 2)")

	_, err = run(t, "eval", "A * 2", "--data", data, "--type", "boolean", "--format", "text", "--ast=false")
	require.Error(t, err)

	_, err = run(t, "eval", "A +", "--data", data, "--type", "any", "--format", "text", "--ast=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")

	_, err = run(t, "eval", "A", "--data", data, "--type", "date", "--format", "text", "--ast=false")
	assert.ErrorContains(t, err, "invalid type")

	_, err = run(t, "eval", "A", "--data", "rows.txt", "--type", "any", "--format", "text", "--ast=false")
	assert.ErrorContains(t, err, "unknown dataset format")
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "len(Name) > Age", "--schema", "Name=string", "--schema", "Age=number", "--data", "")
	require.NoError(t, err)
	assert.Equal(t, "(> len(Name) Age): boolean\n", out)

	data := writeDataset(t, "rows.yaml", "- Price: 2.5\n  Qty: 4\n")
	out, err = run(t, "check", "Price * Qty", "--data", data)
	require.NoError(t, err)
	assert.Equal(t, "(* Price Qty): number\n", out)

	_, err = run(t, "check", "Price + Name", "--data", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unbound identifier Name")
}

func TestSession(t *testing.T) {
	s := newSession([]map[string]interface{}{{"Price": "2", "Qty": "3"}, {"Price": "1", "Qty": "1"}})
	assert.Contains(t, s.names, "Price")
	assert.Contains(t, s.names, "round")

	var out bytes.Buffer
	assert.True(t, s.handle(&out, "Price * Qty"))
	assert.Equal(t, "1: 6\n2: 1\n", out.String())

	out.Reset()
	assert.True(t, s.handle(&out, ":ast 1 + 2 * 3"))
	assert.Equal(t, "(+ 1 (* 2 3))\n", out.String())

	out.Reset()
	assert.True(t, s.handle(&out, "Price +"))
	assert.Contains(t, out.String(), "parse error")

	out.Reset()
	assert.True(t, s.handle(&out, "   "))
	assert.Empty(t, out.String())
	assert.False(t, s.handle(&out, ":quit"))

	single := newSession([]map[string]interface{}{{}})
	out.Reset()
	single.handle(&out, `concat("a", 1)`)
	assert.Equal(t, "\"a1\"\n", out.String())
}

func TestSessionComplete(t *testing.T) {
	s := newSession([]map[string]interface{}{{"Price": "2", "PriceTax": "3"}})

	line := []rune("round(Pri")
	prefix, suggestions, _, _ := s.complete(line, len(line), readline.DelayedTabContext{})
	assert.Equal(t, "Pri", prefix)
	assert.Equal(t, []string{"ce", "ceTax"}, suggestions)

	line = []rune("sta")
	_, suggestions, _, _ = s.complete(line, len(line), readline.DelayedTabContext{})
	assert.Equal(t, []string{"rtsWith"}, suggestions)
}
