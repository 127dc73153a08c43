package engine

import "math"

// Op identifies the operation that produced a Value.
//
// The backward rule of a node is a dispatch over its Op. Composite operators
// (Neg, Sub, Div) are built from these primitives and have no tag of their own.
type Op uint8

// Supported operations.
const (
	OpLeaf Op = iota // input or parameter, no backward rule
	OpAdd            // a + b
	OpMul            // a * b
	OpPow            // a ** p
	OpLn             // ln(a)
	OpTanh           // tanh(a)
)

// String returns the operator symbol ("" for leaves).
func (o Op) String() string {
	switch o {
	case OpLeaf:
		return ""
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpPow:
		return "**"
	case OpLn:
		return "ln"
	case OpTanh:
		return "tanh"
	default:
		return "?"
	}
}

// Arity returns the number of operands the operation takes.
func (o Op) Arity() int {
	switch o {
	case OpAdd, OpMul, OpPow:
		return 2
	case OpLn, OpTanh:
		return 1
	default:
		return 0
	}
}

// backward pushes v.grad into the gradients of v's children.
//
// Contributions are added, never assigned: a child shared by several parents
// (or used twice by the same parent, as in a+a) receives the sum.
func (v *Value) backward() {
	g := v.grad

	switch v.op {
	case OpLeaf:
		// Nothing upstream.

	case OpAdd:
		// d(a+b)/da = 1, d(a+b)/db = 1
		a, b := v.children[0], v.children[1]
		a.grad += g
		b.grad += g

	case OpMul:
		// d(a*b)/da = b, d(a*b)/db = a
		a, b := v.children[0], v.children[1]
		a.grad += b.data * g
		b.grad += a.data * g

	case OpPow:
		// d(a**p)/da = p * a**(p-1)
		// d(a**p)/dp = ln(a) * a**p, NaN for a <= 0
		a, p := v.children[0], v.children[1]
		a.grad += p.data * math.Pow(a.data, p.data-1) * g
		p.grad += math.Log(a.data) * math.Pow(a.data, p.data) * g

	case OpLn:
		// d(ln a)/da = 1/a
		a := v.children[0]
		a.grad += (1 / a.data) * g

	case OpTanh:
		// d(tanh a)/da = 1 - tanh(a)**2, reusing the forward result
		a := v.children[0]
		a.grad += (1 - v.data*v.data) * g
	}
}
