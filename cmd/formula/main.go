// Command formula evaluates formulas against datasets from the command line.
//
// Usage:
//
//	# Evaluate a formula for each row of a dataset
//	formula eval 'A * A + B * B' --data rows.csv
//
//	# Require a filter predicate to produce booleans
//	formula eval 'Year >= 2000' --data rows.json --type boolean
//
//	# Infer the result type against attribute types
//	formula check 'len(Name) > Age' --schema Name=string --schema Age=number
//
//	# Interactive prompt
//	formula repl --data rows.yaml
package main

func main() {
	Execute()
}
