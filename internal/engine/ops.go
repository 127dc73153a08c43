package engine

import "math"

// Add returns v + other.
//
// Backward:
//
//	∂out/∂v = 1, ∂out/∂other = 1
func (v *Value) Add(other *Value) *Value {
	v, other = Cast(v), Cast(other)
	return newResult(v.data+other.data, OpAdd, v, other)
}

// Mul returns v * other.
//
// Backward:
//
//	∂out/∂v = other, ∂out/∂other = v
func (v *Value) Mul(other *Value) *Value {
	v, other = Cast(v), Cast(other)
	return newResult(v.data*other.data, OpMul, v, other)
}

// Pow returns v ** power, with power itself differentiable.
//
// Backward:
//
//	∂out/∂v     = power * v**(power-1)
//	∂out/∂power = ln(v) * v**power
//
// The exponent gradient is NaN when v <= 0. The forward value and the base
// gradient are still what math.Pow produces.
func (v *Value) Pow(power *Value) *Value {
	v, power = Cast(v), Cast(power)
	return newResult(math.Pow(v.data, power.data), OpPow, v, power)
}

// Neg returns -v, computed as v * -1.
func (v *Value) Neg() *Value {
	return v.MulScalar(-1)
}

// Sub returns v - other, computed as v + (-other).
func (v *Value) Sub(other *Value) *Value {
	return v.Add(Cast(other).Neg())
}

// Div returns v / other, computed as v * other**-1.
func (v *Value) Div(other *Value) *Value {
	return v.Mul(Cast(other).PowScalar(-1))
}

// Ln returns the natural logarithm of v.
//
// Backward:
//
//	∂out/∂v = 1/v
//
// Non-positive inputs yield NaN or -Inf, see CheckFinite.
func (v *Value) Ln() *Value {
	v = Cast(v)
	return newResult(math.Log(v.data), OpLn, v)
}

// Tanh returns the hyperbolic tangent of v.
//
// Backward:
//
//	∂out/∂v = 1 - out**2
func (v *Value) Tanh() *Value {
	v = Cast(v)
	return newResult(math.Tanh(v.data), OpTanh, v)
}

// AddScalar returns v + c. c is wrapped into a fresh leaf.
func (v *Value) AddScalar(c float64) *Value {
	return v.Add(New(c))
}

// SubScalar returns v - c, built as v + (-c) with -c wrapped into one leaf.
func (v *Value) SubScalar(c float64) *Value {
	return v.Add(New(-c))
}

// MulScalar returns v * c.
func (v *Value) MulScalar(c float64) *Value {
	return v.Mul(New(c))
}

// DivScalar returns v / c.
func (v *Value) DivScalar(c float64) *Value {
	return v.Div(New(c))
}

// PowScalar returns v ** c. The exponent leaf still receives a gradient.
func (v *Value) PowScalar(c float64) *Value {
	return v.Pow(New(c))
}

// Reflected forms take the raw number on the left. They build the same graph
// as the corresponding operator applied with the Value as receiver.

// RAdd returns c + v, built as v + c.
func RAdd(c float64, v *Value) *Value {
	return v.AddScalar(c)
}

// RSub returns c - v, built as (-v) + c.
func RSub(c float64, v *Value) *Value {
	return v.Neg().AddScalar(c)
}

// RMul returns c * v, built as v * c.
func RMul(c float64, v *Value) *Value {
	return v.MulScalar(c)
}

// RDiv returns c / v, built as v**-1 * c.
func RDiv(c float64, v *Value) *Value {
	return v.PowScalar(-1).MulScalar(c)
}

// RPow returns c ** v, built with c wrapped into a fresh base leaf.
func RPow(c float64, v *Value) *Value {
	return New(c).Pow(v)
}

// Sum returns start + terms[0] + terms[1] + ..., folding left.
//
// With no terms the result is start itself, not a copy.
func Sum(start *Value, terms ...*Value) *Value {
	out := Cast(start)
	for _, t := range terms {
		out = out.Add(t)
	}
	return out
}
