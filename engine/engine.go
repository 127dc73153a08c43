// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a *Value records a node in a directed
// acyclic graph. Backward on any node walks that graph in reverse
// topological order and accumulates dOutput/dNode into each node's Grad.
//
// Example:
//
//	import "github.com/born-ml/micrograd/engine"
//
//	func main() {
//	    a := engine.NewLabeled(2, "a")
//	    b := engine.NewLabeled(-3, "b")
//	    c := a.Mul(b).Add(engine.RPow(2, a)).Tanh()
//
//	    c.Backward()
//	    fmt.Println(a.Grad(), b.Grad())
//	}
//
// Gradients accumulate across Backward calls. Reset them with ZeroGrads or
// ZeroGraph before an independent pass.
package engine

import (
	"github.com/born-ml/micrograd/internal/engine"
)

// Value is a scalar node in the computation graph.
type Value = engine.Value

// Op identifies the operation that produced a Value.
type Op = engine.Op

// Operations.
const (
	OpLeaf = engine.OpLeaf
	OpAdd  = engine.OpAdd
	OpMul  = engine.OpMul
	OpPow  = engine.OpPow
	OpLn   = engine.OpLn
	OpTanh = engine.OpTanh
)

// DomainError reports a node whose data or gradient is NaN or infinite.
type DomainError = engine.DomainError

// Errors.
var (
	ErrOperand = engine.ErrOperand
	ErrDomain  = engine.ErrDomain
)

// New creates a leaf holding data.
func New(data float64) *Value {
	return engine.New(data)
}

// NewLabeled creates a labeled leaf.
func NewLabeled(data float64, label string) *Value {
	return engine.NewLabeled(data, label)
}

// Cast wraps a Go number into a fresh leaf and passes a *Value through.
// It panics with an error wrapping ErrOperand for any other type.
func Cast(operand any) *Value {
	return engine.Cast(operand)
}

// RAdd returns c + v.
func RAdd(c float64, v *Value) *Value { return engine.RAdd(c, v) }

// RSub returns c - v.
func RSub(c float64, v *Value) *Value { return engine.RSub(c, v) }

// RMul returns c * v.
func RMul(c float64, v *Value) *Value { return engine.RMul(c, v) }

// RDiv returns c / v.
func RDiv(c float64, v *Value) *Value { return engine.RDiv(c, v) }

// RPow returns c ** v.
func RPow(c float64, v *Value) *Value { return engine.RPow(c, v) }

// Sum returns start + terms[0] + terms[1] + ..., folded left.
func Sum(start *Value, terms ...*Value) *Value {
	return engine.Sum(start, terms...)
}

// ZeroGrads resets the gradient of every given value.
func ZeroGrads(values ...*Value) {
	engine.ZeroGrads(values...)
}

// ZeroGraph resets the gradient of every node reachable from root.
func ZeroGraph(root *Value) {
	engine.ZeroGraph(root)
}

// CheckFinite returns a *DomainError for the first node under root whose
// data or grad is not finite.
func CheckFinite(root *Value) error {
	return engine.CheckFinite(root)
}
