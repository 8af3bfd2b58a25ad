package runtime

import (
	"fmt"
	"log/slog"
	"strings"

	"glogo/internal/ast"
	"glogo/internal/errs"
)

// Procedure is a named definition: formal parameter names (already resolved
// at definition time) and a body. Immutable once stored; redefining a name
// overwrites the registry entry.
type Procedure struct {
	Name       string
	Parameters []string
	Body       []ast.Command
}

// Procedures is the definition registry plus the stack of per-call parameter
// bindings that shadow the global environment during procedure execution.
type Procedures struct {
	defs   map[string]*Procedure
	frames []map[string]ast.Value
}

func NewProcedures() *Procedures {
	return &Procedures{defs: make(map[string]*Procedure)}
}

// Define resolves parameter names against the current environment at
// definition time: a parameter written ":x" takes the current string value
// of variable x when one exists, otherwise the bare name "x". Literal-style
// parameters keep their written name. This definition-time substitution is a
// deliberate binding rule of the language.
func (p *Procedures) Define(name string, parameters []string, body []ast.Command, vars *Variables) {
	formals := make([]string, 0, len(parameters))
	for _, param := range parameters {
		stripped, hadMarker := strings.CutPrefix(param, ":")
		if !hadMarker {
			formals = append(formals, param)
			continue
		}
		if value, ok := vars.Get(stripped); ok {
			if s, isString := value.(*ast.String); isString {
				formals = append(formals, s.Value)
				continue
			}
		}
		formals = append(formals, stripped)
	}

	slog.Debug("defining procedure",
		slog.String("name", name),
		slog.Any("parameters", formals),
		slog.Int("commands", len(body)))
	p.defs[name] = &Procedure{Name: name, Parameters: formals, Body: body}
}

func (p *Procedures) Lookup(name string) (*Procedure, bool) {
	proc, ok := p.defs[name]
	return proc, ok
}

// PushFrame binds each formal name to its already-evaluated argument.
func (p *Procedures) PushFrame(params []string, args []ast.Value) error {
	if len(params) != len(args) {
		return &errs.InvalidArgumentError{
			Command:  "procedure call",
			Argument: fmt.Sprintf("%d arguments", len(args)),
			Expected: fmt.Sprintf("%d arguments", len(params)),
		}
	}
	frame := make(map[string]ast.Value, len(params))
	for i, param := range params {
		frame[param] = args[i]
	}
	p.frames = append(p.frames, frame)
	return nil
}

func (p *Procedures) PopFrame() {
	if len(p.frames) == 0 {
		return
	}
	p.frames = p.frames[:len(p.frames)-1]
}

// Parameter resolves a name against the call frames, innermost first.
func (p *Procedures) Parameter(name string) (ast.Value, bool) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if value, ok := p.frames[i][name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Depth reports the number of live call frames.
func (p *Procedures) Depth() int {
	return len(p.frames)
}
