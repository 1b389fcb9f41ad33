package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/danielgtaylor/formula"
	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	caseColor  = color.New(color.FgHiBlack)
)

// parseKind reads a value kind given on the command line.
func parseKind(s string) (formula.Kind, error) {
	switch strings.ToLower(s) {
	case "number", "num":
		return formula.KindNum, nil
	case "boolean", "bool":
		return formula.KindBool, nil
	case "string", "str":
		return formula.KindString, nil
	case "any", "":
		return formula.KindAny, nil
	}
	return "", fmt.Errorf("invalid type %q, expected number, boolean, string or any", s)
}

// parseSchema reads `name=kind` pairs.
func parseSchema(pairs []string) (formula.Schema, error) {
	schema := formula.Schema{}
	for _, pair := range pairs {
		name, kind, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid schema entry %q, expected name=type", pair)
		}
		k, err := parseKind(kind)
		if err != nil {
			return nil, err
		}
		schema[name] = k
	}
	return schema, nil
}

// writeValues prints one value per row, as text or as a JSON array.
func writeValues(w io.Writer, format string, values []formula.Value) error {
	switch format {
	case "text":
		for i, v := range values {
			if _, err := fmt.Fprintf(w, "%s %s\n", caseColor.Sprintf("%d:", i+1), v.Repr()); err != nil {
				return err
			}
		}
		return nil
	case "json":
		out := make([]interface{}, len(values))
		for i, v := range values {
			out[i] = jsonValue(v)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return fmt.Errorf("invalid output format %q, expected text or json", format)
}

// jsonValue spells out non-finite numbers, which JSON cannot represent.
func jsonValue(v formula.Value) interface{} {
	if v.IsNum() {
		if n := v.AsNum(); math.IsNaN(n) || math.IsInf(n, 0) {
			return v.String()
		}
	}
	return v.Interface()
}

// formulaError renders a formula error with a pointer to its location.
func formulaError(source string, err formula.Error) error {
	return fmt.Errorf("%s", errorColor.Sprint(err.Pretty(source)))
}
