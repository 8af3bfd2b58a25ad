package evaluator

import (
	"math"
	"strconv"
	"strings"

	"glogo/internal/ast"
	"glogo/internal/errs"
	"glogo/internal/runtime"
)

// applyOperator pops two operands (right first, then left) and applies the
// binary operator. Both operand expressions have already been evaluated and
// pushed left-then-right by the caller.
func applyOperator(op ast.Operator, stack *runtime.Stack) (ast.Value, error) {
	right, err := stack.Pop()
	if err != nil {
		return nil, err
	}
	left, err := stack.Pop()
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpAdd:
		return arithmetic(left, right, checkedAdd)
	case ast.OpSubtract:
		return arithmetic(left, right, checkedSub)
	case ast.OpMultiply:
		return arithmetic(left, right, checkedMul)
	case ast.OpDivide:
		return divideValues(left, right)
	case ast.OpEqual:
		return equalValues(left, right)
	case ast.OpNotEqual:
		return numericCompare(left, right, func(l, r int32) bool { return l != r })
	case ast.OpGreaterThan:
		return numericCompare(left, right, func(l, r int32) bool { return l > r })
	case ast.OpLessThan:
		return numericCompare(left, right, func(l, r int32) bool { return l < r })
	case ast.OpAnd:
		return logical(left, right, func(l, r bool) bool { return l && r })
	case ast.OpOr:
		return logical(left, right, func(l, r bool) bool { return l || r })
	default:
		return nil, &errs.InvalidArgumentError{
			Command:  "operator",
			Argument: string(op),
			Expected: "a known binary operator",
		}
	}
}

// operandToNumber is the pure numeric coercion for operator operands. An
// unresolved VariableRef reaching an operator is a type error: references
// are dereferenced during expression evaluation.
func operandToNumber(v ast.Value) (int32, error) {
	switch v := v.(type) {
	case *ast.Number:
		return v.Value, nil
	case *ast.String:
		n, err := strconv.ParseInt(v.Value, 10, 32)
		if err != nil {
			return 0, errs.ErrTypeMismatch
		}
		return int32(n), nil
	case *ast.Boolean:
		if v.Value {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errs.ErrTypeMismatch
	}
}

func operandToBool(v ast.Value) (bool, error) {
	switch v := v.(type) {
	case *ast.Boolean:
		return v.Value, nil
	case *ast.Number:
		return v.Value != 0, nil
	case *ast.String:
		return strings.ToUpper(v.Value) == "TRUE", nil
	default:
		return false, errs.ErrTypeMismatch
	}
}

func arithmetic(left, right ast.Value, apply func(a, b int32) (int32, error)) (ast.Value, error) {
	l, err := operandToNumber(left)
	if err != nil {
		return nil, err
	}
	r, err := operandToNumber(right)
	if err != nil {
		return nil, err
	}
	n, err := apply(l, r)
	if err != nil {
		return nil, err
	}
	return &ast.Number{Value: n}, nil
}

func divideValues(left, right ast.Value) (ast.Value, error) {
	l, err := operandToNumber(left)
	if err != nil {
		return nil, err
	}
	r, err := operandToNumber(right)
	if err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errs.ErrDivisionByZero
	}
	n, err := checkedInt32(int64(l) / int64(r))
	if err != nil {
		return nil, err
	}
	return &ast.Number{Value: n}, nil
}

// equalValues is polymorphic: numbers compare by value, strings
// case-insensitively, booleans directly; a number against a string parses
// the string first.
func equalValues(left, right ast.Value) (ast.Value, error) {
	switch l := left.(type) {
	case *ast.Number:
		switch r := right.(type) {
		case *ast.Number:
			return &ast.Boolean{Value: l.Value == r.Value}, nil
		case *ast.String:
			return numberEqualsString(l, r)
		}
	case *ast.String:
		switch r := right.(type) {
		case *ast.String:
			return &ast.Boolean{Value: strings.EqualFold(l.Value, r.Value)}, nil
		case *ast.Number:
			return numberEqualsString(r, l)
		}
	case *ast.Boolean:
		if r, ok := right.(*ast.Boolean); ok {
			return &ast.Boolean{Value: l.Value == r.Value}, nil
		}
	}
	return nil, errs.ErrTypeMismatch
}

func numberEqualsString(n *ast.Number, s *ast.String) (ast.Value, error) {
	parsed, err := strconv.ParseInt(s.Value, 10, 32)
	if err != nil {
		return nil, errs.ErrTypeMismatch
	}
	return &ast.Boolean{Value: n.Value == int32(parsed)}, nil
}

func numericCompare(left, right ast.Value, compare func(l, r int32) bool) (ast.Value, error) {
	l, err := operandToNumber(left)
	if err != nil {
		return nil, err
	}
	r, err := operandToNumber(right)
	if err != nil {
		return nil, err
	}
	return &ast.Boolean{Value: compare(l, r)}, nil
}

func logical(left, right ast.Value, combine func(l, r bool) bool) (ast.Value, error) {
	l, err := operandToBool(left)
	if err != nil {
		return nil, err
	}
	r, err := operandToBool(right)
	if err != nil {
		return nil, err
	}
	return &ast.Boolean{Value: combine(l, r)}, nil
}

func checkedAdd(a, b int32) (int32, error) {
	return checkedInt32(int64(a) + int64(b))
}

func checkedSub(a, b int32) (int32, error) {
	return checkedInt32(int64(a) - int64(b))
}

func checkedMul(a, b int32) (int32, error) {
	return checkedInt32(int64(a) * int64(b))
}

func checkedInt32(n int64) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errs.ErrOverflow
	}
	return int32(n), nil
}
