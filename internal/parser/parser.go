package parser

import (
	"fmt"
	"strconv"
	"strings"

	"glogo/internal/ast"
	"glogo/internal/errs"
)

// Parser is a recursive-descent parser over raw source text with an explicit
// byte cursor. Each production tries its alternatives in a fixed order and
// restores the cursor when an alternative fails; fixed-keyword commands are
// always tried before the generic procedure-call fallback, since
// procedure-call syntax is unconstrained and would otherwise shadow every
// keyword.
type Parser struct {
	src string
	pos int
}

// Parse consumes the entire source text and returns the program. Empty or
// whitespace-only input is a valid zero-command program. Any leftover input
// that matches no production is a ParseError carrying a byte span.
func Parse(src string) (*ast.Program, error) {
	if strings.TrimSpace(src) == "" {
		return &ast.Program{}, nil
	}
	p := &Parser{src: src}
	var commands []ast.Command
	for {
		p.skipLayout()
		if p.eof() {
			break
		}
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return &ast.Program{Commands: commands}, nil
}

func (p *Parser) parseCommand() (ast.Command, error) {
	// A bare END here has no open TO to close.
	if p.peekTag("END") {
		return nil, &errs.ParseError{
			Input: p.src,
			Span:  errs.Span{Start: p.pos, Len: len("END")},
			Message: fmt.Sprintf(
				"found 'END' command on line %d without matching 'TO' procedure definition; each 'END' must be paired with a 'TO' procedure definition",
				p.lineAt(p.pos)),
		}
	}
	if cmd, matched, err := p.parseProcedureDefinition(); matched || err != nil {
		return cmd, err
	}
	cmd, matched, err := p.parseRegularCommand()
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, p.errorAt(p.pos, "unrecognized command")
	}
	return cmd, nil
}

// parseRegularCommand tries every command production except procedure
// definitions, in disambiguation-priority order.
func (p *Parser) parseRegularCommand() (ast.Command, bool, error) {
	type production func() (ast.Command, bool, error)
	productions := []production{
		func() (ast.Command, bool, error) {
			return p.parseNullary("PENUP", func() ast.Command { return &ast.PenUp{} })
		},
		func() (ast.Command, bool, error) {
			return p.parseNullary("PENDOWN", func() ast.Command { return &ast.PenDown{} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("FORWARD", func(e ast.Expression) ast.Command { return &ast.Forward{Amount: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("BACK", func(e ast.Expression) ast.Command { return &ast.Back{Amount: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("LEFT", func(e ast.Expression) ast.Command { return &ast.Left{Amount: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("RIGHT", func(e ast.Expression) ast.Command { return &ast.Right{Amount: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("SETPENCOLOR", func(e ast.Expression) ast.Command { return &ast.SetPenColor{Color: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("TURN", func(e ast.Expression) ast.Command { return &ast.Turn{Degrees: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("SETHEADING", func(e ast.Expression) ast.Command { return &ast.SetHeading{Degrees: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("SETX", func(e ast.Expression) ast.Command { return &ast.SetX{Position: e} })
		},
		func() (ast.Command, bool, error) {
			return p.parseUnary("SETY", func(e ast.Expression) ast.Command { return &ast.SetY{Position: e} })
		},
		p.parseMake,
		p.parseAddAssign,
		p.parseIf,
		p.parseWhile,
		p.parseExpressionStatement,
		p.parseProcedureCall,
	}
	for _, production := range productions {
		cmd, matched, err := production()
		if matched || err != nil {
			return cmd, matched, err
		}
	}
	return nil, false, nil
}

// parseNullary matches a keyword taking no arguments. A trailing expression
// is a parse-time arity error naming the command.
func (p *Parser) parseNullary(keyword string, build func() ast.Command) (ast.Command, bool, error) {
	if !p.tag(keyword) {
		return nil, false, nil
	}
	mark := p.pos
	if p.ws1() {
		if _, extra := p.parseExpression(); extra {
			return nil, true, &errs.InvalidArgumentError{Command: keyword, Expected: "no arguments"}
		}
	}
	p.pos = mark
	return build(), true, nil
}

// parseUnary matches a keyword taking exactly one expression argument.
func (p *Parser) parseUnary(keyword string, build func(ast.Expression) ast.Command) (ast.Command, bool, error) {
	mark := p.pos
	if !p.tag(keyword) {
		return nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false, nil
	}
	expr, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, false, nil
	}
	rest := p.pos
	if p.ws1() {
		if _, extra := p.parseExpression(); extra {
			return nil, true, &errs.InvalidArgumentError{Command: keyword, Expected: "only one argument"}
		}
	}
	p.pos = rest
	return build(expr), true, nil
}

func (p *Parser) parseMake() (ast.Command, bool, error) {
	mark := p.pos
	if !p.tag("MAKE") {
		return nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false, nil
	}
	name, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false, nil
	}
	value, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, false, nil
	}
	return &ast.Make{Name: name, Value: value}, true, nil
}

func (p *Parser) parseAddAssign() (ast.Command, bool, error) {
	mark := p.pos
	if !p.tag("ADDASSIGN") {
		return nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false, nil
	}
	var target string
	switch {
	case p.tag(`"`):
		name, ok := p.takeWhile1(isNameChar)
		if !ok {
			p.pos = mark
			return nil, false, nil
		}
		target = name
	case p.tag(":"):
		name, ok := p.takeWhile1(isNameChar)
		if !ok {
			p.pos = mark
			return nil, false, nil
		}
		// keep the marker: the evaluator resolves the indirection
		target = ":" + name
	default:
		p.pos = mark
		return nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false, nil
	}
	amount, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, false, nil
	}
	rest := p.pos
	if p.ws1() {
		if _, extra := p.parseExpression(); extra {
			return nil, true, &errs.InvalidArgumentError{Command: "ADDASSIGN", Expected: "only two arguments"}
		}
	}
	p.pos = rest
	return &ast.AddAssign{Target: target, Amount: amount}, true, nil
}

func (p *Parser) parseIf() (ast.Command, bool, error) {
	cond, body, matched, err := p.parseConditional("IF")
	if !matched || err != nil {
		return nil, matched, err
	}
	return &ast.If{Condition: cond, Body: body}, true, nil
}

func (p *Parser) parseWhile() (ast.Command, bool, error) {
	cond, body, matched, err := p.parseConditional("WHILE")
	if !matched || err != nil {
		return nil, matched, err
	}
	return &ast.While{Condition: cond, Body: body}, true, nil
}

func (p *Parser) parseConditional(keyword string) (ast.Expression, []ast.Command, bool, error) {
	mark := p.pos
	if !p.tag(keyword) {
		return nil, nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, nil, false, nil
	}
	cond, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, nil, false, nil
	}
	p.skipLayout()
	body, matched, err := p.parseCommandBlock()
	if err != nil {
		return nil, nil, true, err
	}
	if !matched {
		p.pos = mark
		return nil, nil, false, nil
	}
	return cond, body, true, nil
}

// parseCommandBlock parses [ commands ]. Commands nest arbitrarily; layout
// (whitespace and comments) separates them.
func (p *Parser) parseCommandBlock() ([]ast.Command, bool, error) {
	mark := p.pos
	if !p.tag("[") {
		return nil, false, nil
	}
	cmds := []ast.Command{}
	for {
		p.skipLayout()
		if p.tag("]") {
			return cmds, true, nil
		}
		if p.eof() {
			p.pos = mark
			return nil, false, nil
		}
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, true, err
		}
		cmds = append(cmds, cmd)
	}
}

func (p *Parser) parseExpressionStatement() (ast.Command, bool, error) {
	expr, ok := p.parseExpression()
	if !ok {
		return nil, false, nil
	}
	return &ast.ExpressionStatement{Expression: expr}, true, nil
}

// parseProcedureCall is the fallback production: any identifier that is not
// TO or END, followed by whitespace-separated argument expressions.
func (p *Parser) parseProcedureCall() (ast.Command, bool, error) {
	mark := p.pos
	name, ok := p.takeWhile1(isNameChar)
	if !ok {
		return nil, false, nil
	}
	if name == "TO" || name == "END" {
		p.pos = mark
		return nil, false, nil
	}
	var args []ast.Expression
	for {
		rest := p.pos
		if !p.ws1() {
			break
		}
		arg, ok := p.parseExpression()
		if !ok {
			p.pos = rest
			break
		}
		args = append(args, arg)
	}
	return &ast.ProcedureCall{Name: name, Arguments: args}, true, nil
}

// parseProcedureDefinition parses TO name params... body END. The body is
// parsed eagerly; input running out before END is a ParseError reporting the
// procedure name and how many body commands parsed before the failure.
func (p *Parser) parseProcedureDefinition() (ast.Command, bool, error) {
	mark := p.pos
	if !p.tag("TO") {
		return nil, false, nil
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false, nil
	}
	name, ok := p.takeWhile1(isNameChar)
	if !ok {
		p.pos = mark
		return nil, false, nil
	}

	var params []string
	for {
		p.ws0()
		param, ok := p.parseParameter()
		if !ok {
			break
		}
		params = append(params, param)
	}

	p.skipLayout()
	bodyStart := p.pos

	var body []ast.Command
	foundEnd := false
	for {
		p.skipLayout()
		if p.tag("END") {
			foundEnd = true
			break
		}
		if p.eof() {
			break
		}
		cmd, matched, err := p.parseRegularCommand()
		if err != nil {
			return nil, true, err
		}
		if !matched {
			break
		}
		body = append(body, cmd)
	}

	if !foundEnd {
		return nil, true, &errs.ParseError{
			Input: p.src,
			Span:  errs.Span{Start: bodyStart, Len: len(p.src) - bodyStart},
			Message: fmt.Sprintf(
				"unterminated procedure definition '%s': expected 'END' keyword after %d commands",
				name, len(body)),
			Incomplete: true,
		}
	}
	return &ast.ProcedureDefinition{Name: name, Parameters: params, Body: body}, true, nil
}

// parseParameter matches :ident (variable-style, marker kept) or "ident
// (literal-style).
func (p *Parser) parseParameter() (string, bool) {
	mark := p.pos
	if p.tag(":") {
		if name, ok := p.takeWhile1(isNameChar); ok {
			return ":" + name, true
		}
		p.pos = mark
		return "", false
	}
	if p.tag(`"`) {
		if name, ok := p.takeWhile1(isNameChar); ok {
			return name, true
		}
		p.pos = mark
	}
	return "", false
}

// parseExpression tries, in order: a value literal, a prefix binary
// operator with two sub-expressions, a turtle state query.
func (p *Parser) parseExpression() (ast.Expression, bool) {
	if v, ok := p.parseValue(); ok {
		return &ast.ValueExpr{Value: v}, true
	}
	if expr, ok := p.parseBinaryOp(); ok {
		return expr, true
	}
	for _, q := range queryNames {
		if p.tag(q) {
			return &ast.Query{Name: q}, true
		}
	}
	return nil, false
}

var queryNames = []string{"XCOR", "YCOR", "HEADING", "COLOR"}

var operators = []ast.Operator{
	ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide,
	ast.OpEqual, ast.OpNotEqual, ast.OpGreaterThan, ast.OpLessThan,
	ast.OpAnd, ast.OpOr,
}

func (p *Parser) parseBinaryOp() (ast.Expression, bool) {
	mark := p.pos
	op, ok := p.parseOperator()
	if !ok {
		return nil, false
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false
	}
	left, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, false
	}
	if !p.ws1() {
		p.pos = mark
		return nil, false
	}
	right, ok := p.parseExpression()
	if !ok {
		p.pos = mark
		return nil, false
	}
	return &ast.BinaryOp{Operator: op, Left: left, Right: right}, true
}

func (p *Parser) parseOperator() (ast.Operator, bool) {
	for _, op := range operators {
		if p.tag(string(op)) {
			return op, true
		}
	}
	return "", false
}

// parseValue alternatives, in order: quoted string, signed number, variable
// reference, boolean word.
func (p *Parser) parseValue() (ast.Value, bool) {
	mark := p.pos
	if p.tag(`"`) {
		if s, ok := p.takeWhile1(isStringChar); ok {
			return &ast.String{Value: s}, true
		}
		p.pos = mark
	}
	if n, ok := p.parseNumber(); ok {
		return n, true
	}
	if p.tag(":") {
		if name, ok := p.takeWhile1(isNameChar); ok {
			return &ast.VariableRef{Name: name}, true
		}
		p.pos = mark
	}
	if p.tag("TRUE") {
		return &ast.Boolean{Value: true}, true
	}
	if p.tag("FALSE") {
		return &ast.Boolean{Value: false}, true
	}
	return nil, false
}

// parseNumber matches an optionally-signed digit run that fits in int32;
// out-of-range literals fail the alternative rather than wrapping.
func (p *Parser) parseNumber() (ast.Value, bool) {
	mark := p.pos
	neg := p.tag("-")
	digits, ok := p.takeWhile1(isDigit)
	if !ok {
		p.pos = mark
		return nil, false
	}
	text := digits
	if neg {
		text = "-" + digits
	}
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		p.pos = mark
		return nil, false
	}
	return &ast.Number{Value: int32(n)}, true
}
