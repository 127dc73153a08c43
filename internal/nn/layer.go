package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
)

// Layer is a row of neurons sharing the same input.
type Layer struct {
	name    string
	neurons []*Neuron
}

// NewLayer creates outputSize neurons of inputSize inputs each, named
// "<name>-<i>".
func NewLayer(inputSize, outputSize int, name string, rng *rand.Rand) *Layer {
	rng = newRand(rng)

	neurons := make([]*Neuron, outputSize)
	for i := range neurons {
		neurons[i] = NewNeuron(inputSize, fmt.Sprintf("%s-%d", name, i), rng)
	}

	return &Layer{name: name, neurons: neurons}
}

// Forward applies every neuron to x.
func (l *Layer) Forward(x []*engine.Value) ([]*engine.Value, error) {
	out := make([]*engine.Value, len(l.neurons))
	for i, n := range l.neurons {
		v, err := n.Forward(x)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.name, err)
		}
		out[i] = v
	}
	return out, nil
}

// Neurons returns the neurons of the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Parameters returns the parameters of every neuron, in order.
func (l *Layer) Parameters() []*engine.Value {
	var params []*engine.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// ZeroGrad resets gradients of every neuron.
func (l *Layer) ZeroGrad() {
	zeroGrad(l)
}
