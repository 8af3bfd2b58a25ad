package ast

import (
	"bytes"
	"strconv"
)

// Value is the runtime value model. Numbers are fixed-width 32-bit signed so
// arithmetic overflow is detectable rather than silently wrapping.
type Value interface {
	valueNode()
	String() string
}

type Number struct {
	Value int32
}

func (n *Number) valueNode()     {}
func (n *Number) String() string { return strconv.FormatInt(int64(n.Value), 10) }

type String struct {
	Value string
}

func (s *String) valueNode()     {}
func (s *String) String() string { return s.Value }

// VariableRef is an unresolved reference written as :name. It must be
// dereferenced through the environment before any operator or movement
// command consumes it.
type VariableRef struct {
	Name string
}

func (v *VariableRef) valueNode()     {}
func (v *VariableRef) String() string { return ":" + v.Name }

type Boolean struct {
	Value bool
}

func (b *Boolean) valueNode() {}
func (b *Boolean) String() string {
	if b.Value {
		return "TRUE"
	}
	return "FALSE"
}

// Operator is a prefix binary operator keyword.
type Operator string

const (
	OpAdd         Operator = "+"
	OpSubtract    Operator = "-"
	OpMultiply    Operator = "*"
	OpDivide      Operator = "/"
	OpEqual       Operator = "EQ"
	OpNotEqual    Operator = "NE"
	OpGreaterThan Operator = "GT"
	OpLessThan    Operator = "LT"
	OpAnd         Operator = "AND"
	OpOr          Operator = "OR"
)

type Expression interface {
	expressionNode()
	String() string
}

// ValueExpr wraps a literal value as an expression.
type ValueExpr struct {
	Value Value
}

func (e *ValueExpr) expressionNode() {}
func (e *ValueExpr) String() string  { return e.Value.String() }

type BinaryOp struct {
	Operator Operator
	Left     Expression
	Right    Expression
}

func (e *BinaryOp) expressionNode() {}
func (e *BinaryOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(string(e.Operator))
	out.WriteString(" ")
	out.WriteString(e.Left.String())
	out.WriteString(" ")
	out.WriteString(e.Right.String())
	out.WriteString(")")
	return out.String()
}

// Query reads current turtle state: XCOR, YCOR, HEADING or COLOR.
type Query struct {
	Name string
}

func (e *Query) expressionNode() {}
func (e *Query) String() string  { return e.Name }

type Command interface {
	commandNode()
	String() string
}

type PenUp struct{}

func (c *PenUp) commandNode()   {}
func (c *PenUp) String() string { return "PENUP" }

type PenDown struct{}

func (c *PenDown) commandNode()   {}
func (c *PenDown) String() string { return "PENDOWN" }

type Forward struct {
	Amount Expression
}

func (c *Forward) commandNode()   {}
func (c *Forward) String() string { return "FORWARD " + c.Amount.String() }

type Back struct {
	Amount Expression
}

func (c *Back) commandNode()   {}
func (c *Back) String() string { return "BACK " + c.Amount.String() }

type Left struct {
	Amount Expression
}

func (c *Left) commandNode()   {}
func (c *Left) String() string { return "LEFT " + c.Amount.String() }

type Right struct {
	Amount Expression
}

func (c *Right) commandNode()   {}
func (c *Right) String() string { return "RIGHT " + c.Amount.String() }

type SetPenColor struct {
	Color Expression
}

func (c *SetPenColor) commandNode()   {}
func (c *SetPenColor) String() string { return "SETPENCOLOR " + c.Color.String() }

type Turn struct {
	Degrees Expression
}

func (c *Turn) commandNode()   {}
func (c *Turn) String() string { return "TURN " + c.Degrees.String() }

type SetHeading struct {
	Degrees Expression
}

func (c *SetHeading) commandNode()   {}
func (c *SetHeading) String() string { return "SETHEADING " + c.Degrees.String() }

type SetX struct {
	Position Expression
}

func (c *SetX) commandNode()   {}
func (c *SetX) String() string { return "SETX " + c.Position.String() }

type SetY struct {
	Position Expression
}

func (c *SetY) commandNode()   {}
func (c *SetY) String() string { return "SETY " + c.Position.String() }

type Make struct {
	Name  Expression
	Value Expression
}

func (c *Make) commandNode() {}
func (c *Make) String() string {
	return "MAKE " + c.Name.String() + " " + c.Value.String()
}

// AddAssign increments a variable in place. Target keeps the written ':'
// marker when the author used variable-indirect syntax, so the evaluator can
// resolve the real target name at run time.
type AddAssign struct {
	Target string
	Amount Expression
}

func (c *AddAssign) commandNode() {}
func (c *AddAssign) String() string {
	return "ADDASSIGN " + c.Target + " " + c.Amount.String()
}

type If struct {
	Condition Expression
	Body      []Command
}

func (c *If) commandNode() {}
func (c *If) String() string {
	var out bytes.Buffer
	out.WriteString("IF ")
	out.WriteString(c.Condition.String())
	out.WriteString(" [")
	for i, cmd := range c.Body {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(cmd.String())
	}
	out.WriteString("]")
	return out.String()
}

type While struct {
	Condition Expression
	Body      []Command
}

func (c *While) commandNode() {}
func (c *While) String() string {
	var out bytes.Buffer
	out.WriteString("WHILE ")
	out.WriteString(c.Condition.String())
	out.WriteString(" [")
	for i, cmd := range c.Body {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(cmd.String())
	}
	out.WriteString("]")
	return out.String()
}

// ExpressionStatement is a bare expression in command position, evaluated
// for its operand-stack side effect.
type ExpressionStatement struct {
	Expression Expression
}

func (c *ExpressionStatement) commandNode()   {}
func (c *ExpressionStatement) String() string { return c.Expression.String() }

// ProcedureDefinition stores the written parameter tokens: ":x" for
// variable-style parameters and "x" for literal-style ones. The registry
// resolves them to formal names at definition time.
type ProcedureDefinition struct {
	Name       string
	Parameters []string
	Body       []Command
}

func (c *ProcedureDefinition) commandNode() {}
func (c *ProcedureDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("TO ")
	out.WriteString(c.Name)
	for _, p := range c.Parameters {
		out.WriteString(" ")
		out.WriteString(p)
	}
	out.WriteString(" [")
	for _, cmd := range c.Body {
		out.WriteString(" ")
		out.WriteString(cmd.String())
	}
	out.WriteString("] END")
	return out.String()
}

type ProcedureCall struct {
	Name      string
	Arguments []Expression
}

func (c *ProcedureCall) commandNode() {}
func (c *ProcedureCall) String() string {
	var out bytes.Buffer
	out.WriteString(c.Name)
	for _, a := range c.Arguments {
		out.WriteString(" ")
		out.WriteString(a.String())
	}
	return out.String()
}

// Program is the parse result: an ordered list of top-level commands.
type Program struct {
	Commands []Command
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, cmd := range p.Commands {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(cmd.String())
	}
	return out.String()
}
