package runtime

import (
	"glogo/internal/ast"
	"glogo/internal/errs"
)

// Stack is the operand stack used to sequence expression evaluation. Every
// sub-expression evaluation pushes its resolved value; binary operators pop
// their two operands right-then-left.
type Stack struct {
	items []ast.Value
}

func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) Push(v ast.Value) {
	s.items = append(s.items, v)
}

// Pop returns ErrStackUnderflow on an empty stack. Well-formed evaluation
// never hits this; it guards the push-before-apply invariant.
func (s *Stack) Pop() (ast.Value, error) {
	if len(s.items) == 0 {
		return nil, errs.ErrStackUnderflow
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func (s *Stack) Len() int {
	return len(s.items)
}
