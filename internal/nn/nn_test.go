package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// TestNeuron_Forward tests tanh(b + Σ wᵢxᵢ) against direct evaluation.
func TestNeuron_Forward(t *testing.T) {
	n := NewNeuron(3, "n", seeded())
	x := []float64{0.5, -1.0, 2.0}

	out, err := n.Forward(Inputs(x))
	require.NoError(t, err)

	sum := n.Bias().Data()
	for i, w := range n.Weights() {
		sum += w.Data() * x[i]
	}
	assert.InDelta(t, math.Tanh(sum), out.Data(), 1e-12)
	assert.Equal(t, engine.OpTanh, out.Op())
}

// TestNeuron_InitRangeAndLabels tests U(-1, 1) initialization and naming.
func TestNeuron_InitRangeAndLabels(t *testing.T) {
	n := NewNeuron(4, "L1-2", seeded())

	params := n.Parameters()
	require.Len(t, params, 5)
	for _, p := range params {
		assert.GreaterOrEqual(t, p.Data(), -1.0)
		assert.Less(t, p.Data(), 1.0)
		assert.True(t, p.IsLeaf())
	}
	assert.Equal(t, "L1-2w0", params[0].Label())
	assert.Equal(t, "L1-2w3", params[3].Label())
	assert.Equal(t, "L1-2b", params[4].Label())
	assert.Same(t, n.Bias(), params[4])
}

// TestNeuron_ArityMismatch tests that wrong input sizes are reported.
func TestNeuron_ArityMismatch(t *testing.T) {
	n := NewNeuron(3, "n", seeded())

	_, err := n.Forward(Inputs([]float64{1, 2}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArity))
}

// TestNeuron_Gradients tests parameter gradients against the analytic form.
func TestNeuron_Gradients(t *testing.T) {
	n := NewNeuron(2, "n", seeded())
	x := []float64{0.3, -0.7}

	out, err := n.Forward(Inputs(x))
	require.NoError(t, err)
	out.Backward()

	local := 1 - out.Data()*out.Data()
	assert.InDelta(t, local*x[0], n.Weights()[0].Grad(), 1e-12)
	assert.InDelta(t, local*x[1], n.Weights()[1].Grad(), 1e-12)
	assert.InDelta(t, local, n.Bias().Grad(), 1e-12)

	n.ZeroGrad()
	for _, p := range n.Parameters() {
		assert.Zero(t, p.Grad())
	}
}

// TestLayer_Forward tests output width and neuron naming.
func TestLayer_Forward(t *testing.T) {
	l := NewLayer(3, 2, "L1", seeded())

	out, err := l.Forward(Inputs([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, l.Parameters(), 2*(3+1))
	assert.Equal(t, "L1-1", l.Neurons()[1].Name())

	_, err = l.Forward(Inputs([]float64{1}))
	assert.ErrorIs(t, err, ErrArity)
}

// TestMLP_Structure tests sizes, layer names and parameter order.
func TestMLP_Structure(t *testing.T) {
	m := NewMLP(3, []int{4, 4}, 1, Config{Rand: seeded()})

	assert.Equal(t, []int{3, 4, 4, 1}, m.Sizes())
	require.Len(t, m.Layers(), 3)

	params := m.Parameters()
	assert.Len(t, params, 4*(3+1)+4*(4+1)+1*(4+1))
	assert.Equal(t, "L1-0w0", params[0].Label())
	assert.Equal(t, "L3-0b", params[len(params)-1].Label())

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		assert.False(t, seen[p.Label()], "duplicate label %s", p.Label())
		seen[p.Label()] = true
	}
}

// TestMLP_Deterministic tests that the same seed yields the same network.
func TestMLP_Deterministic(t *testing.T) {
	a := NewMLP(2, []int{3}, 1, Config{Rand: rand.New(rand.NewSource(7))})
	b := NewMLP(2, []int{3}, 1, Config{Rand: rand.New(rand.NewSource(7))})

	for i, p := range a.Parameters() {
		assert.Equal(t, p.Data(), b.Parameters()[i].Data())
	}
}

// TestMLP_GradientCheck compares parameter gradients with finite differences.
func TestMLP_GradientCheck(t *testing.T) {
	m := NewMLP(2, []int{3}, 1, Config{Rand: seeded()})
	x := []float64{0.4, -0.6}
	y := []float64{0.5}

	lossAt := func() float64 {
		out, err := m.Predict(x)
		require.NoError(t, err)
		loss, err := MSELoss(y, out)
		require.NoError(t, err)
		return loss.Data()
	}

	out, err := m.Predict(x)
	require.NoError(t, err)
	loss, err := MSELoss(y, out)
	require.NoError(t, err)
	loss.Backward()
	require.NoError(t, engine.CheckFinite(loss))

	const eps = 1e-6
	for _, p := range m.Parameters() {
		orig := p.Data()
		p.SetData(orig + eps)
		plus := lossAt()
		p.SetData(orig - eps)
		minus := lossAt()
		p.SetData(orig)

		assert.InDelta(t, (plus-minus)/(2*eps), p.Grad(), 1e-6, "parameter %s", p.Label())
	}
}

// TestMLP_ForwardBatch tests that concurrent graph building matches Predict.
func TestMLP_ForwardBatch(t *testing.T) {
	cfg := Config{
		Rand:     seeded(),
		Parallel: &parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
	}
	m := NewMLP(3, []int{4}, 2, cfg)

	xs := [][]float64{
		{2, 3, -1},
		{3, -1, 0.5},
		{0.5, 1, 1},
		{1, 1, -1},
		{0, 0, 0},
	}

	batch, err := m.ForwardBatch(xs)
	require.NoError(t, err)
	require.Len(t, batch, len(xs))

	for i, x := range xs {
		single, err := m.Predict(x)
		require.NoError(t, err)
		require.Len(t, batch[i], 2)
		for j := range single {
			assert.Equal(t, single[j].Data(), batch[i][j].Data())
		}
	}
}

// TestMLP_ParallelConfig tests that an explicit schedule is kept, including a
// disabled one, and that nil selects the default.
func TestMLP_ParallelConfig(t *testing.T) {
	sequential := NewMLP(2, nil, 1, Config{Rand: seeded(), Parallel: &parallel.Config{}})
	assert.Equal(t, parallel.Config{}, sequential.parallel)
	assert.False(t, sequential.parallel.Enabled)

	defaulted := NewMLP(2, nil, 1, Config{Rand: seeded()})
	assert.Equal(t, parallel.DefaultConfig(), defaulted.parallel)

	outs, err := sequential.ForwardBatch([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Len(t, outs, 2)
}

// TestMLP_ForwardBatchError tests that a malformed sample is reported with its index.
func TestMLP_ForwardBatchError(t *testing.T) {
	m := NewMLP(2, nil, 1, Config{Rand: seeded()})

	_, err := m.ForwardBatch([][]float64{{1, 2}, {1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArity)
	assert.Contains(t, err.Error(), "sample 1")
}

// TestMSELoss tests the summed squared error and its gradients.
func TestMSELoss(t *testing.T) {
	preds := []*engine.Value{engine.New(0.5), engine.New(-1)}
	loss, err := MSELoss([]float64{1, 1}, preds)
	require.NoError(t, err)

	assert.InDelta(t, 0.25+4, loss.Data(), 1e-12)

	loss.Backward()
	assert.InDelta(t, -2*(1-0.5), preds[0].Grad(), 1e-12)
	assert.InDelta(t, -2*(1+1), preds[1].Grad(), 1e-12)
	assert.NoError(t, engine.CheckFinite(loss))

	_, err = MSELoss([]float64{1}, preds)
	assert.ErrorIs(t, err, ErrArity)
}

// TestMSELossBatch tests row-wise arity checks.
func TestMSELossBatch(t *testing.T) {
	preds := [][]*engine.Value{{engine.New(1)}, {engine.New(2)}}

	loss, err := MSELossBatch([][]float64{{0}, {0}}, preds)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, loss.Data(), 1e-12)

	_, err = MSELossBatch([][]float64{{0}}, preds)
	assert.ErrorIs(t, err, ErrArity)

	_, err = MSELossBatch([][]float64{{0}, {0, 1}}, preds)
	assert.ErrorIs(t, err, ErrArity)
}

// TestMLP_GradientDescentReducesLoss tests the training contract end to end.
func TestMLP_GradientDescentReducesLoss(t *testing.T) {
	m := NewMLP(3, []int{4, 4}, 1, Config{Rand: seeded()})
	xs := [][]float64{{2, 3, -1}, {3, -1, 0.5}, {0.5, 1, 1}, {1, 1, -1}}
	ys := [][]float64{{1}, {-1}, {-1}, {1}}

	step := func() float64 {
		preds, err := m.ForwardBatch(xs)
		require.NoError(t, err)
		loss, err := MSELossBatch(ys, preds)
		require.NoError(t, err)
		loss.Backward()
		for _, p := range m.Parameters() {
			p.SetData(p.Data() - 0.02*p.Grad())
		}
		m.ZeroGrad()
		return loss.Data()
	}

	first := step()
	var last float64
	for i := 0; i < 100; i++ {
		last = step()
	}
	assert.Less(t, last, first)
}
