package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
)

// Neuron computes tanh(b + Σ wᵢxᵢ).
//
// Weights and bias are initialized from U(-1, 1) and labeled
// "<name>w<i>" and "<name>b" so exported graphs stay readable.
type Neuron struct {
	name    string
	weights []*engine.Value
	bias    *engine.Value
}

// NewNeuron creates a neuron with inputSize weights.
func NewNeuron(inputSize int, name string, rng *rand.Rand) *Neuron {
	rng = newRand(rng)

	weights := make([]*engine.Value, inputSize)
	for i := range weights {
		weights[i] = engine.NewLabeled(Uniform(rng, -1, 1), fmt.Sprintf("%sw%d", name, i))
	}
	bias := engine.NewLabeled(Uniform(rng, -1, 1), name+"b")

	return &Neuron{
		name:    name,
		weights: weights,
		bias:    bias,
	}
}

// Forward builds the graph of the neuron applied to x.
//
// Returns ErrArity when len(x) differs from the number of weights.
func (n *Neuron) Forward(x []*engine.Value) (*engine.Value, error) {
	if len(x) != len(n.weights) {
		return nil, fmt.Errorf("neuron %s: %w: %d inputs, %d weights", n.name, ErrArity, len(x), len(n.weights))
	}

	terms := make([]*engine.Value, len(x))
	for i, w := range n.weights {
		terms[i] = w.Mul(x[i])
	}

	return engine.Sum(n.bias, terms...).Tanh(), nil
}

// Name returns the neuron name.
func (n *Neuron) Name() string {
	return n.name
}

// Weights returns the weight parameters.
func (n *Neuron) Weights() []*engine.Value {
	return n.weights
}

// Bias returns the bias parameter.
func (n *Neuron) Bias() *engine.Value {
	return n.bias
}

// Parameters returns weights followed by the bias.
func (n *Neuron) Parameters() []*engine.Value {
	params := make([]*engine.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// ZeroGrad resets weight and bias gradients.
func (n *Neuron) ZeroGrad() {
	zeroGrad(n)
}
