// Package nn implements neural network modules on top of the scalar engine.
//
// This package provides building blocks for constructing networks:
//   - Module interface: Base interface for all NN components
//   - Neuron: tanh(w·x + b) over scalar Values
//   - Layer: a row of independent neurons
//   - MLP: a stack of layers
//   - MSELoss: summed squared error
//   - Checkpoint: parameter snapshots on disk
//
// Every parameter is a leaf *engine.Value. Forward builds a fresh graph on
// each call; Backward on the loss fills Grad() of every parameter.
package nn

import (
	"errors"

	"github.com/born-ml/micrograd/internal/engine"
)

// ErrArity reports parallel sequences of different lengths, such as an
// input vector that does not match a neuron's weight count or predictions
// that do not match targets.
var ErrArity = errors.New("arity mismatch")

// Module is the base interface for all neural network components.
type Module interface {
	// Parameters returns all trainable parameters of this module, in a
	// stable order.
	Parameters() []*engine.Value

	// ZeroGrad resets the gradient of every parameter.
	ZeroGrad()
}

// zeroGrad resets gradients of every parameter of m.
func zeroGrad(m Module) {
	engine.ZeroGrads(m.Parameters()...)
}

// Inputs wraps raw numbers into fresh leaf Values.
func Inputs(x []float64) []*engine.Value {
	out := make([]*engine.Value, len(x))
	for i, v := range x {
		out[i] = engine.New(v)
	}
	return out
}
