package engine

import (
	"errors"
	"fmt"
	"math"
)

// Common errors.
var (
	ErrOperand = errors.New("operand is not a number or *Value")
	ErrDomain  = errors.New("value is not finite")
)

// DomainError reports a node whose data or gradient left the finite range,
// typically ln or pow of a non-positive base.
type DomainError struct {
	Op    Op      // Operation that produced the node
	Label string  // Node label, if any
	Field string  // "data" or "grad"
	Value float64 // The offending value (NaN or ±Inf)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	name := e.Label
	if name == "" {
		name = "<unlabeled>"
	}
	op := e.Op.String()
	if op == "" {
		op = "leaf"
	}
	return fmt.Sprintf("%s: node %s (op %s) has %s = %v", ErrDomain, name, op, e.Field, e.Value)
}

// Unwrap returns ErrDomain.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// CheckFinite walks the graph under root in topological order and returns a
// *DomainError for the first node whose data or grad is NaN or infinite.
//
// The engine never calls it on its own: floating-point domain problems
// propagate silently through forward and backward passes unless the caller
// asks.
func CheckFinite(root *Value) error {
	for _, v := range root.Topo() {
		if !isFinite(v.data) {
			return &DomainError{Op: v.op, Label: v.label, Field: "data", Value: v.data}
		}
		if !isFinite(v.grad) {
			return &DomainError{Op: v.op, Label: v.label, Field: "grad", Value: v.grad}
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
