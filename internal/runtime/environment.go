package runtime

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"glogo/internal/ast"
)

// Variables is the single global name->value mapping. The language has no
// lexical closures; procedure parameters shadow this map through the
// registry's frame stack, not through nested environments.
type Variables struct {
	vars map[string]ast.Value
}

func NewVariables() *Variables {
	return &Variables{vars: make(map[string]ast.Value)}
}

// Set normalizes string values before storage: "TRUE"/"FALSE" (any case)
// become Boolean, integer-parseable text becomes Number, everything else is
// stored as written.
func (v *Variables) Set(name string, value ast.Value) {
	stored := value
	if s, ok := value.(*ast.String); ok {
		switch strings.ToUpper(s.Value) {
		case "TRUE":
			stored = &ast.Boolean{Value: true}
		case "FALSE":
			stored = &ast.Boolean{Value: false}
		default:
			if n, err := strconv.ParseInt(s.Value, 10, 32); err == nil {
				stored = &ast.Number{Value: int32(n)}
			}
		}
	}
	slog.Debug("setting variable",
		slog.String("name", name),
		slog.String("value", stored.String()))
	v.vars[name] = stored
}

func (v *Variables) Get(name string) (ast.Value, bool) {
	value, ok := v.vars[name]
	return value, ok
}

// Names returns every defined variable name, sorted so diagnostics are
// deterministic.
func (v *Variables) Names() []string {
	names := make([]string, 0, len(v.vars))
	for name := range v.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
