// Package engine implements scalar reverse-mode automatic differentiation.
//
// A Value is one node of a directed acyclic computation graph. Every operator
// creates a new Value whose children are the existing operands, so graphs are
// acyclic by construction. Backward walks the graph in reverse topological
// order and accumulates gradients into every reachable node.
//
// Usage:
//
//	a := engine.NewLabeled(2.0, "a")
//	b := engine.NewLabeled(3.0, "b")
//	c := a.Mul(b).Add(a) // c = a*b + a
//
//	c.Backward()
//	fmt.Println(a.Grad()) // dc/da = b + 1 = 4
//	fmt.Println(b.Grad()) // dc/db = a = 2
//
// Gradients accumulate. Callers that run several backward passes over the
// same parameters must reset them with ZeroGrad (or ZeroGrads) in between.
package engine

import (
	"fmt"
)

// Value is a scalar node in the computation graph.
//
// data and grad are the only mutable fields: data may be overwritten by an
// optimizer between passes, grad is accumulated by Backward and reset by the
// caller. children and op are fixed at construction.
type Value struct {
	data     float64
	grad     float64
	children []*Value // operands that produced data (0, 1 or 2)
	op       Op       // operation that produced data (OpLeaf for inputs)
	label    string   // cosmetic name, used by graph exporters
}

// New creates a leaf Value holding data.
func New(data float64) *Value {
	return &Value{data: data}
}

// NewLabeled creates a labeled leaf Value.
func NewLabeled(data float64, label string) *Value {
	return &Value{data: data, label: label}
}

// newResult creates a non-leaf node produced by op from children.
func newResult(data float64, op Op, children ...*Value) *Value {
	return &Value{
		data:     data,
		children: children,
		op:       op,
	}
}

// Cast converts an operand into a Value.
//
// A *Value is returned unchanged. Any Go numeric type is wrapped into a fresh
// leaf on every call, so two wrapped constants never share a gradient.
// Anything else is a contract violation and panics with an error wrapping
// ErrOperand.
func Cast(operand any) *Value {
	switch x := operand.(type) {
	case *Value:
		if x == nil {
			panic(fmt.Errorf("%w: nil *Value", ErrOperand))
		}
		return x
	case float64:
		return New(x)
	case float32:
		return New(float64(x))
	case int:
		return New(float64(x))
	case int8:
		return New(float64(x))
	case int16:
		return New(float64(x))
	case int32:
		return New(float64(x))
	case int64:
		return New(float64(x))
	case uint:
		return New(float64(x))
	case uint8:
		return New(float64(x))
	case uint16:
		return New(float64(x))
	case uint32:
		return New(float64(x))
	case uint64:
		return New(float64(x))
	default:
		panic(fmt.Errorf("%w: %T", ErrOperand, operand))
	}
}

// Data returns the forward value.
func (v *Value) Data() float64 {
	return v.data
}

// SetData overwrites the forward value.
//
// Intended for optimizers updating leaf parameters between passes. Nodes
// computed from v are not recomputed.
func (v *Value) SetData(data float64) {
	v.data = data
}

// Grad returns the accumulated gradient of the last backward root with
// respect to v.
func (v *Value) Grad() float64 {
	return v.grad
}

// ZeroGrad resets the gradient to 0.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// Children returns the operands that produced v.
//
// The returned slice is a copy; the graph itself cannot be modified through it.
func (v *Value) Children() []*Value {
	if len(v.children) == 0 {
		return nil
	}
	out := make([]*Value, len(v.children))
	copy(out, v.children)
	return out
}

// Op returns the operation that produced v.
func (v *Value) Op() Op {
	return v.op
}

// IsLeaf reports whether v is an input or parameter (has no children).
func (v *Value) IsLeaf() bool {
	return len(v.children) == 0
}

// Label returns the cosmetic name of v.
func (v *Value) Label() string {
	return v.label
}

// SetLabel sets the cosmetic name and returns v for chaining.
func (v *Value) SetLabel(label string) *Value {
	v.label = label
	return v
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.label != "" {
		return fmt.Sprintf("Value(data:%v | label:%s)", v.data, v.label)
	}
	return fmt.Sprintf("Value(data:%v)", v.data)
}
