package main

import (
	"fmt"

	"github.com/danielgtaylor/formula"
	"github.com/danielgtaylor/formula/internal/records"
	"github.com/spf13/cobra"
)

var checkFlags struct {
	schema []string
	data   string
}

var checkCmd = &cobra.Command{
	Use:   "check FORMULA",
	Short: "Type check a formula without evaluating it",
	Long: `Parse a formula and infer the type of its result from the types of the
attributes it references. Attribute types come from --schema flags or from the
first row of a dataset.

Examples:
  formula check 'len(Name) > Age' --schema Name=string --schema Age=number
  formula check 'Price * Qty' --data rows.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringArrayVarP(&checkFlags.schema, "schema", "s", nil, "attribute type as name=type, repeatable")
	checkCmd.Flags().StringVarP(&checkFlags.data, "data", "d", "", "dataset whose first row gives attribute types")
}

func runCheck(cmd *cobra.Command, args []string) error {
	source := args[0]
	schema, err := parseSchema(checkFlags.schema)
	if err != nil {
		return err
	}
	if checkFlags.data != "" {
		recs, err := records.Load(checkFlags.data)
		if err != nil {
			return err
		}
		if len(recs) > 0 {
			for name, kind := range formula.SchemaOf(formula.NewEnvironment(recs[0])) {
				if _, ok := schema[name]; !ok {
					schema[name] = kind
				}
			}
		}
	}

	ast, ferr := formula.Compile(source)
	if ferr != nil {
		return formulaError(source, ferr)
	}
	kind, ferr := formula.Check(ast, schema)
	if ferr != nil {
		return formulaError(source, ferr)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ast, kind)
	return nil
}
