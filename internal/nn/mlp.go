package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/parallel"
)

// Config controls MLP construction.
type Config struct {
	Rand     *rand.Rand       // Weight initialization source (default: time-seeded)
	Parallel *parallel.Config // Scheduling of ForwardBatch (default: parallel.DefaultConfig())
}

// MLP is a multi-layer perceptron of tanh neurons.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4}, 1, nn.Config{})
//	out, err := model.Forward(nn.Inputs([]float64{2, 3, -1}))
//
// Layers are named L1..Ln, so parameter labels look like "L2-3w0".
type MLP struct {
	sizes    []int
	layers   []*Layer
	parallel parallel.Config
}

// NewMLP creates an MLP mapping inputSize inputs through the hidden layer
// sizes to outputSize outputs.
func NewMLP(inputSize int, hidden []int, outputSize int, cfg Config) *MLP {
	rng := newRand(cfg.Rand)
	sched := parallel.DefaultConfig()
	if cfg.Parallel != nil {
		sched = *cfg.Parallel
	}

	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, inputSize)
	sizes = append(sizes, hidden...)
	sizes = append(sizes, outputSize)

	layers := make([]*Layer, len(sizes)-1)
	for i := 1; i < len(sizes); i++ {
		layers[i-1] = NewLayer(sizes[i-1], sizes[i], fmt.Sprintf("L%d", i), rng)
	}

	return &MLP{
		sizes:    sizes,
		layers:   layers,
		parallel: sched,
	}
}

// Forward feeds x through every layer.
func (m *MLP) Forward(x []*engine.Value) ([]*engine.Value, error) {
	var err error
	for _, layer := range m.layers {
		x, err = layer.Forward(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Predict wraps x into leaves and runs Forward.
func (m *MLP) Predict(x []float64) ([]*engine.Value, error) {
	return m.Forward(Inputs(x))
}

// ForwardBatch runs Predict for every sample.
//
// Samples are independent graphs that only read the shared parameters, so
// they may be built concurrently. The subsequent backward pass over the loss
// is single-threaded.
func (m *MLP) ForwardBatch(xs [][]float64) ([][]*engine.Value, error) {
	outs := make([][]*engine.Value, len(xs))
	errs := make([]error, len(xs))

	parallel.For(len(xs), func(i int) {
		outs[i], errs[i] = m.Predict(xs[i])
	}, m.parallel)

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return outs, nil
}

// Sizes returns input, hidden and output sizes.
func (m *MLP) Sizes() []int {
	out := make([]int, len(m.sizes))
	copy(out, m.sizes)
	return out
}

// Layers returns the layers of the network.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Parameters returns the parameters of every layer, in order.
func (m *MLP) Parameters() []*engine.Value {
	var params []*engine.Value
	for _, layer := range m.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// ZeroGrad resets gradients of every parameter.
func (m *MLP) ZeroGrad() {
	zeroGrad(m)
}
