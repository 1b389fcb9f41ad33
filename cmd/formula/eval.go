package main

import (
	"fmt"
	"log/slog"

	"github.com/danielgtaylor/formula"
	"github.com/danielgtaylor/formula/internal/records"
	"github.com/spf13/cobra"
)

var evalFlags struct {
	data   string
	typ    string
	format string
	ast    bool
}

var evalCmd = &cobra.Command{
	Use:   "eval FORMULA",
	Short: "Evaluate a formula for each row of a dataset",
	Long: `Evaluate a formula once for every row of a dataset and print the results.

The dataset is a JSON or YAML list of objects, or a CSV file with a header
row. Cell text such as "12" or "true" is read as a number or boolean. Without
--data the formula is evaluated once with no attributes.

Examples:
  # Build a column
  formula eval 'A * A + B * B' --data rows.csv

  # Check a filter predicate produces booleans
  formula eval 'Year >= 2000 && Country = "US"' --data rows.json --type boolean

  # JSON output
  formula eval 'round(Price * 1.2, 2)' --data rows.yaml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.data, "data", "d", "", "dataset file (.json, .yaml, .csv)")
	evalCmd.Flags().StringVarP(&evalFlags.typ, "type", "t", "any", "required result type: number, boolean, string, any")
	evalCmd.Flags().StringVarP(&evalFlags.format, "format", "f", "text", "output format: text, json")
	evalCmd.Flags().BoolVar(&evalFlags.ast, "ast", false, "print the parsed formula before evaluating")
}

// loadRows reads the dataset, or returns a single empty row without one.
func loadRows(path string) ([]records.Record, error) {
	if path == "" {
		return []records.Record{{}}, nil
	}
	recs, err := records.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded dataset", "path", path, "rows", len(recs), "attributes", records.Attributes(recs))
	return recs, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	source := args[0]
	want, err := parseKind(evalFlags.typ)
	if err != nil {
		return err
	}
	rows, err := loadRows(evalFlags.data)
	if err != nil {
		return err
	}

	if evalFlags.ast {
		ast, ferr := formula.Compile(source)
		if ferr != nil {
			return formulaError(source, ferr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ast)
	}

	values, ferr := formula.EvaluateRecords(source, rows, formula.WithLogger(slog.Default()))
	if ferr != nil {
		return formulaError(source, ferr)
	}
	if ferr := formula.CheckOutputs(values, want); ferr != nil {
		return formulaError(source, ferr)
	}
	return writeValues(cmd.OutOrStdout(), evalFlags.format, values)
}
