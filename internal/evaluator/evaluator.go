package evaluator

import (
	"log/slog"
	"strconv"
	"strings"

	"glogo/internal/ast"
	"glogo/internal/errs"
	"glogo/internal/runtime"
	"glogo/internal/turtle"
)

// Interpreter is the execution context for one program run: the turtle, the
// global variable environment, the operand stack and the procedure registry.
// It is constructed per run and never shared, so no locking is needed.
type Interpreter struct {
	turtle     *turtle.Turtle
	vars       *runtime.Variables
	stack      *runtime.Stack
	procedures *runtime.Procedures
}

// New builds a fresh interpreter drawing on a width x height canvas.
func New(width, height int) *Interpreter {
	slog.Debug("creating interpreter",
		slog.Int("width", width),
		slog.Int("height", height))
	return &Interpreter{
		turtle:     turtle.New(width, height),
		vars:       runtime.NewVariables(),
		stack:      runtime.NewStack(),
		procedures: runtime.NewProcedures(),
	}
}

// Execute walks the program's commands in order. The first error aborts the
// run and is returned verbatim.
func (i *Interpreter) Execute(program *ast.Program) error {
	slog.Debug("executing program", slog.Int("commands", len(program.Commands)))
	for _, cmd := range program.Commands {
		if err := i.execCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// SaveImage writes the drawing to path, dispatching on the extension.
func (i *Interpreter) SaveImage(path string) error {
	slog.Debug("saving image", slog.String("path", path))
	return i.turtle.SaveImage(path)
}

// Turtle exposes the turtle state for callers that report on a run.
func (i *Interpreter) Turtle() *turtle.Turtle { return i.turtle }

// Variables exposes the global environment for diagnostics.
func (i *Interpreter) Variables() *runtime.Variables { return i.vars }

func (i *Interpreter) execCommand(cmd ast.Command) error {
	slog.Debug("executing command", slog.String("command", cmd.String()))
	switch cmd := cmd.(type) {
	case *ast.PenUp:
		i.turtle.PenUp()
		return nil
	case *ast.PenDown:
		i.turtle.PenDown()
		return nil
	case *ast.Forward:
		amount, err := i.evalAmount(cmd.Amount)
		if err != nil {
			return err
		}
		return i.turtle.Forward(amount)
	case *ast.Back:
		amount, err := i.evalAmount(cmd.Amount)
		if err != nil {
			return err
		}
		return i.turtle.Back(amount)
	case *ast.Left:
		amount, err := i.evalAmount(cmd.Amount)
		if err != nil {
			return err
		}
		return i.turtle.Left(amount)
	case *ast.Right:
		amount, err := i.evalAmount(cmd.Amount)
		if err != nil {
			return err
		}
		return i.turtle.Right(amount)
	case *ast.SetPenColor:
		color, err := i.evalAmount(cmd.Color)
		if err != nil {
			return err
		}
		if color < 0 || color > 15 {
			return &errs.InvalidArgumentError{
				Command:  "SETPENCOLOR",
				Argument: strconv.FormatInt(int64(color), 10),
				Expected: "an integer between 0 and 15",
			}
		}
		return i.turtle.SetPenColor(color)
	case *ast.Turn:
		degrees, err := i.evalAmount(cmd.Degrees)
		if err != nil {
			return err
		}
		i.turtle.Turn(degrees)
		return nil
	case *ast.SetHeading:
		degrees, err := i.evalAmount(cmd.Degrees)
		if err != nil {
			return err
		}
		i.turtle.SetHeading(degrees)
		return nil
	case *ast.SetX:
		position, err := i.evalAmount(cmd.Position)
		if err != nil {
			return err
		}
		i.turtle.SetX(position)
		return nil
	case *ast.SetY:
		position, err := i.evalAmount(cmd.Position)
		if err != nil {
			return err
		}
		i.turtle.SetY(position)
		return nil
	case *ast.Make:
		return i.execMake(cmd)
	case *ast.AddAssign:
		return i.execAddAssign(cmd)
	case *ast.If:
		truthy, err := i.evalCondition(cmd.Condition)
		if err != nil {
			return err
		}
		if truthy {
			return i.execBody(cmd.Body)
		}
		return nil
	case *ast.While:
		for {
			truthy, err := i.evalCondition(cmd.Condition)
			if err != nil {
				return err
			}
			if !truthy {
				return nil
			}
			if err := i.execBody(cmd.Body); err != nil {
				return err
			}
		}
	case *ast.ExpressionStatement:
		_, err := i.evalExpression(cmd.Expression)
		return err
	case *ast.ProcedureDefinition:
		i.procedures.Define(cmd.Name, cmd.Parameters, cmd.Body, i.vars)
		return nil
	case *ast.ProcedureCall:
		return i.execProcedureCall(cmd)
	default:
		return &errs.InvalidArgumentError{
			Command:  "command",
			Argument: cmd.String(),
			Expected: "a known command",
		}
	}
}

func (i *Interpreter) execBody(body []ast.Command) error {
	for _, cmd := range body {
		if err := i.execCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execMake(cmd *ast.Make) error {
	name, err := i.evalExpression(cmd.Name)
	if err != nil {
		return err
	}
	value, err := i.evalExpression(cmd.Value)
	if err != nil {
		return err
	}
	nameStr, err := i.valueToString(name)
	if err != nil {
		return err
	}
	// numeric text becomes a number here; Set normalizes booleans
	if s, ok := value.(*ast.String); ok {
		if n, err := strconv.ParseInt(s.Value, 10, 32); err == nil {
			value = &ast.Number{Value: int32(n)}
		}
	}
	i.vars.Set(nameStr, value)
	return nil
}

// execAddAssign resolves the written target through a three-way rule: a
// ':'-prefixed target names a variable holding the real target name; a bare
// target naming a variable that holds a string uses that string as the
// target; otherwise the bare name is the target itself.
func (i *Interpreter) execAddAssign(cmd *ast.AddAssign) error {
	value, err := i.evalExpression(cmd.Amount)
	if err != nil {
		return err
	}
	amount, err := i.valueToInt(value)
	if err != nil {
		return err
	}

	var target string
	if stripped, indirect := strings.CutPrefix(cmd.Target, ":"); indirect {
		target, err = i.resolveVariableValue(stripped)
		if err != nil {
			return err
		}
	} else if current, ok := i.vars.Get(cmd.Target); ok {
		if s, isString := current.(*ast.String); isString {
			target = s.Value
		} else {
			target = cmd.Target
		}
	} else {
		target = cmd.Target
	}

	current, ok := i.vars.Get(target)
	if !ok {
		return &errs.UndefinedVariableError{Name: target, Defined: i.vars.Names()}
	}
	currentAmount, err := i.valueToInt(current)
	if err != nil {
		return err
	}
	sum, err := checkedAdd(currentAmount, amount)
	if err != nil {
		return err
	}
	i.vars.Set(target, &ast.Number{Value: sum})
	return nil
}

func (i *Interpreter) execProcedureCall(cmd *ast.ProcedureCall) error {
	proc, ok := i.procedures.Lookup(cmd.Name)
	if !ok {
		return &errs.InvalidArgumentError{
			Command:  "procedure call",
			Argument: cmd.Name,
			Expected: "a defined procedure name",
		}
	}

	// arguments are evaluated in the caller's scope, before the new frame
	args := make([]ast.Value, 0, len(cmd.Arguments))
	for _, arg := range cmd.Arguments {
		value, err := i.evalExpression(arg)
		if err != nil {
			return err
		}
		args = append(args, value)
	}

	if err := i.procedures.PushFrame(proc.Parameters, args); err != nil {
		return err
	}
	// the run aborts on error anyway; popping unconditionally keeps the
	// frame stack consistent for embedders like the REPL
	defer i.procedures.PopFrame()

	return i.execBody(proc.Body)
}

// evalExpression resolves an expression to a value. Every sub-expression
// evaluation pushes its resolved result onto the operand stack in addition
// to returning it; binary operators re-push both operand results and pop
// them right-then-left.
func (i *Interpreter) evalExpression(expr ast.Expression) (ast.Value, error) {
	switch expr := expr.(type) {
	case *ast.ValueExpr:
		resolved, err := i.resolveValue(expr.Value)
		if err != nil {
			return nil, err
		}
		i.stack.Push(resolved)
		return resolved, nil
	case *ast.BinaryOp:
		left, err := i.evalExpression(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpression(expr.Right)
		if err != nil {
			return nil, err
		}
		i.stack.Push(left)
		i.stack.Push(right)
		return applyOperator(expr.Operator, i.stack)
	case *ast.Query:
		result, err := i.resolveQuery(expr.Name)
		if err != nil {
			return nil, err
		}
		i.stack.Push(result)
		return result, nil
	default:
		return nil, errs.ErrTypeMismatch
	}
}

func (i *Interpreter) evalAmount(expr ast.Expression) (int32, error) {
	value, err := i.evalExpression(expr)
	if err != nil {
		return 0, err
	}
	return i.valueToInt(value)
}

func (i *Interpreter) evalCondition(expr ast.Expression) (bool, error) {
	value, err := i.evalExpression(expr)
	if err != nil {
		return false, err
	}
	return i.valueToBool(value)
}

// resolveValue dereferences variable references (innermost parameter frame
// first, then globals, with one level of ':'-string indirection through the
// globals) and promotes TRUE/FALSE string literals to booleans.
func (i *Interpreter) resolveValue(v ast.Value) (ast.Value, error) {
	switch v := v.(type) {
	case *ast.VariableRef:
		if value, ok := i.procedures.Parameter(v.Name); ok {
			return value, nil
		}
		value, ok := i.vars.Get(v.Name)
		if !ok {
			return nil, &errs.UndefinedVariableError{Name: v.Name, Defined: i.vars.Names()}
		}
		if s, isString := value.(*ast.String); isString && strings.HasPrefix(s.Value, ":") {
			referenced := s.Value[1:]
			final, ok := i.vars.Get(referenced)
			if !ok {
				return nil, &errs.UndefinedVariableError{Name: referenced, Defined: i.vars.Names()}
			}
			return final, nil
		}
		return value, nil
	case *ast.String:
		switch strings.ToUpper(v.Value) {
		case "TRUE":
			return &ast.Boolean{Value: true}, nil
		case "FALSE":
			return &ast.Boolean{Value: false}, nil
		}
		return v, nil
	default:
		return v, nil
	}
}

func (i *Interpreter) resolveQuery(name string) (ast.Value, error) {
	switch name {
	case "XCOR":
		return &ast.Number{Value: i.turtle.X()}, nil
	case "YCOR":
		return &ast.Number{Value: i.turtle.Y()}, nil
	case "HEADING":
		return &ast.Number{Value: i.turtle.Heading()}, nil
	case "COLOR":
		return &ast.Number{Value: i.turtle.PenColor()}, nil
	default:
		return nil, &errs.InvalidArgumentError{
			Command:  "query",
			Argument: name,
			Expected: "XCOR, YCOR, HEADING, or COLOR",
		}
	}
}

func (i *Interpreter) valueToInt(v ast.Value) (int32, error) {
	switch v := v.(type) {
	case *ast.Number:
		return v.Value, nil
	case *ast.String:
		n, err := strconv.ParseInt(v.Value, 10, 32)
		if err != nil {
			return 0, &errs.UnexpectedValueError{Expected: "a number", Got: v.Value}
		}
		return int32(n), nil
	case *ast.VariableRef:
		value, ok := i.vars.Get(v.Name)
		if !ok {
			return 0, &errs.UndefinedVariableError{Name: v.Name, Defined: i.vars.Names()}
		}
		return i.valueToInt(value)
	case *ast.Boolean:
		if v.Value {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errs.ErrTypeMismatch
	}
}

func (i *Interpreter) valueToBool(v ast.Value) (bool, error) {
	switch v := v.(type) {
	case *ast.Boolean:
		return v.Value, nil
	case *ast.String:
		return strings.ToUpper(v.Value) == "TRUE", nil
	case *ast.Number:
		return v.Value != 0, nil
	default:
		return false, errs.ErrTypeMismatch
	}
}

func (i *Interpreter) valueToString(v ast.Value) (string, error) {
	switch v := v.(type) {
	case *ast.String:
		return v.Value, nil
	case *ast.Number:
		return strconv.FormatInt(int64(v.Value), 10), nil
	case *ast.VariableRef:
		return i.resolveVariableValue(v.Name)
	case *ast.Boolean:
		if v.Value {
			return "true", nil
		}
		return "false", nil
	default:
		return "", errs.ErrTypeMismatch
	}
}

// resolveVariableValue returns the textual value of a variable holding a
// string or number, consulting the globals first and falling back to the
// parameter frames.
func (i *Interpreter) resolveVariableValue(name string) (string, error) {
	if value, ok := i.vars.Get(name); ok {
		switch value := value.(type) {
		case *ast.String:
			return value.Value, nil
		case *ast.Number:
			return strconv.FormatInt(int64(value.Value), 10), nil
		default:
			return "", &errs.UnexpectedValueError{Expected: "a string or number", Got: value.String()}
		}
	}
	if value, ok := i.procedures.Parameter(name); ok {
		switch value := value.(type) {
		case *ast.String:
			return value.Value, nil
		case *ast.Number:
			return strconv.FormatInt(int64(value.Value), 10), nil
		}
	}
	return "", &errs.UndefinedVariableError{Name: name, Defined: i.vars.Names()}
}
