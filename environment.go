package formula

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Environment maps identifier names to values for one evaluation. Callers
// build one per row; the interpreter only reads from it.
type Environment map[string]Value

// NewEnvironment converts a data record, such as one row of a table, into an
// environment. Values are coerced with ValueOf and nil entries are left out
// so that referencing them is an unbound identifier error.
func NewEnvironment(record map[string]interface{}) Environment {
	env := make(Environment, len(record))
	for k, raw := range record {
		if v, ok := ValueOf(raw); ok {
			env[k] = v
		}
	}
	return env
}

// Lookup returns the value bound to `name`.
func (e Environment) Lookup(name string) (Value, bool) {
	v, ok := e[name]
	return v, ok
}

// Names returns the bound names in sorted order.
func (e Environment) Names() []string {
	names := maps.Keys(e)
	slices.Sort(names)
	return names
}
