package evaluator

import (
	"errors"
	"testing"

	"glogo/internal/ast"
	"glogo/internal/errs"
	"glogo/internal/runtime"
)

func apply(t *testing.T, op ast.Operator, left, right ast.Value) (ast.Value, error) {
	t.Helper()
	stack := runtime.NewStack()
	stack.Push(left)
	stack.Push(right)
	return applyOperator(op, stack)
}

func number(n int32) ast.Value { return &ast.Number{Value: n} }
func str(s string) ast.Value   { return &ast.String{Value: s} }
func boolean(b bool) ast.Value { return &ast.Boolean{Value: b} }

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name        string
		op          ast.Operator
		left, right ast.Value
		expected    int32
	}{
		{"add", ast.OpAdd, number(3), number(4), 7},
		{"subtract pops right then left", ast.OpSubtract, number(10), number(4), 6},
		{"multiply", ast.OpMultiply, number(6), number(7), 42},
		{"divide truncates", ast.OpDivide, number(7), number(2), 3},
		{"divide negative", ast.OpDivide, number(-7), number(2), -3},
		{"string operand coerces", ast.OpAdd, str("5"), number(1), 6},
		{"boolean operand coerces", ast.OpAdd, boolean(true), number(1), 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := apply(t, c.op, c.left, c.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			n, ok := result.(*ast.Number)
			if !ok {
				t.Fatalf("expected Number, got %T", result)
			}
			if n.Value != c.expected {
				t.Errorf("expected %d, got %d", c.expected, n.Value)
			}
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	cases := []struct {
		name        string
		op          ast.Operator
		left, right ast.Value
		expected    error
	}{
		{"add overflow", ast.OpAdd, number(2147483647), number(1), errs.ErrOverflow},
		{"subtract overflow", ast.OpSubtract, number(-2147483648), number(1), errs.ErrOverflow},
		{"multiply overflow", ast.OpMultiply, number(2147483647), number(2), errs.ErrOverflow},
		{"divide min by minus one", ast.OpDivide, number(-2147483648), number(-1), errs.ErrOverflow},
		{"divide by zero", ast.OpDivide, number(10), number(0), errs.ErrDivisionByZero},
		{"non numeric string", ast.OpAdd, str("banana"), number(1), errs.ErrTypeMismatch},
		{"unresolved reference", ast.OpAdd, &ast.VariableRef{Name: "x"}, number(1), errs.ErrTypeMismatch},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := apply(t, c.op, c.left, c.right)
			if !errors.Is(err, c.expected) {
				t.Errorf("expected %v, got %v", c.expected, err)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name        string
		left, right ast.Value
		expected    bool
	}{
		{"equal numbers", number(5), number(5), true},
		{"unequal numbers", number(5), number(6), false},
		{"strings ignore case", str("Hello"), str("hello"), true},
		{"unequal strings", str("a"), str("b"), false},
		{"equal booleans", boolean(true), boolean(true), true},
		{"unequal booleans", boolean(true), boolean(false), false},
		{"number against numeric string", number(5), str("5"), true},
		{"numeric string against number", str("7"), number(7), true},
		{"number against wrong numeric string", number(5), str("6"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := apply(t, ast.OpEqual, c.left, c.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b, ok := result.(*ast.Boolean)
			if !ok {
				t.Fatalf("expected Boolean, got %T", result)
			}
			if b.Value != c.expected {
				t.Errorf("expected %v, got %v", c.expected, b.Value)
			}
		})
	}
}

func TestEqualTypeMismatch(t *testing.T) {
	cases := []struct {
		name        string
		left, right ast.Value
	}{
		{"number against text", number(5), str("banana")},
		{"boolean against number", boolean(true), number(1)},
		{"string against boolean", str("TRUE"), boolean(true)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := apply(t, ast.OpEqual, c.left, c.right); !errors.Is(err, errs.ErrTypeMismatch) {
				t.Errorf("expected ErrTypeMismatch, got %v", err)
			}
		})
	}
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		name        string
		op          ast.Operator
		left, right ast.Value
		expected    bool
	}{
		{"not equal", ast.OpNotEqual, number(1), number(2), true},
		{"not equal same", ast.OpNotEqual, number(2), number(2), false},
		{"greater than", ast.OpGreaterThan, number(3), number(2), true},
		{"greater than coerces string", ast.OpGreaterThan, str("10"), number(5), true},
		{"less than", ast.OpLessThan, number(2), number(3), true},
		{"less than false", ast.OpLessThan, number(3), number(2), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := apply(t, c.op, c.left, c.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b := result.(*ast.Boolean); b.Value != c.expected {
				t.Errorf("expected %v, got %v", c.expected, b.Value)
			}
		})
	}
}

func TestLogical(t *testing.T) {
	cases := []struct {
		name        string
		op          ast.Operator
		left, right ast.Value
		expected    bool
	}{
		{"and true", ast.OpAnd, boolean(true), boolean(true), true},
		{"and false", ast.OpAnd, boolean(true), boolean(false), false},
		{"or true", ast.OpOr, boolean(false), boolean(true), true},
		{"or false", ast.OpOr, boolean(false), boolean(false), false},
		{"string coerces to bool", ast.OpAnd, str("TRUE"), boolean(true), true},
		{"nonzero number is true", ast.OpOr, number(3), boolean(false), true},
		{"zero number is false", ast.OpAnd, number(0), boolean(true), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := apply(t, c.op, c.left, c.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b := result.(*ast.Boolean); b.Value != c.expected {
				t.Errorf("expected %v, got %v", c.expected, b.Value)
			}
		})
	}
}

func TestApplyOperatorUnderflow(t *testing.T) {
	stack := runtime.NewStack()
	if _, err := applyOperator(ast.OpAdd, stack); !errors.Is(err, errs.ErrStackUnderflow) {
		t.Errorf("expected ErrStackUnderflow, got %v", err)
	}
}
