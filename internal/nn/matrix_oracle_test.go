package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// layerMatrices returns the weights of l as an out×in matrix and its biases
// as a vector.
func layerMatrices(l *Layer) (*mat.Dense, *mat.VecDense) {
	neurons := l.Neurons()
	in := len(neurons[0].Weights())

	w := mat.NewDense(len(neurons), in, nil)
	b := mat.NewVecDense(len(neurons), nil)
	for i, n := range neurons {
		for j, wij := range n.Weights() {
			w.Set(i, j, wij.Data())
		}
		b.SetVec(i, n.Bias().Data())
	}
	return w, b
}

// TestMLP_MatchesMatrixForward compares the scalar graph against tanh(Wx + b)
// evaluated layer by layer with dense matrices.
func TestMLP_MatchesMatrixForward(t *testing.T) {
	model := NewMLP(3, []int{5, 4}, 2, Config{Rand: seeded()})
	x := []float64{0.3, -1.2, 0.8}

	out, err := model.Predict(x)
	require.NoError(t, err)
	require.Len(t, out, 2)

	act := mat.NewVecDense(len(x), append([]float64(nil), x...))
	for _, layer := range model.Layers() {
		w, b := layerMatrices(layer)
		rows, _ := w.Dims()

		next := mat.NewVecDense(rows, nil)
		next.MulVec(w, act)
		next.AddVec(next, b)
		for i := 0; i < rows; i++ {
			next.SetVec(i, math.Tanh(next.AtVec(i)))
		}
		act = next
	}

	for i, v := range out {
		assert.InDelta(t, act.AtVec(i), v.Data(), 1e-12, "output %d", i)
	}
}

// TestLayer_WeightGradientIsOuterProduct tests dL/dW = (δ ⊙ (1 - y²)) xᵀ for
// L = Σ δᵢ yᵢ.
func TestLayer_WeightGradientIsOuterProduct(t *testing.T) {
	layer := NewLayer(3, 2, "L", seeded())
	x := []float64{1.5, -0.5, 2.0}
	delta := []float64{0.7, -1.3}

	ys, err := layer.Forward(Inputs(x))
	require.NoError(t, err)

	loss := ys[0].MulScalar(delta[0]).Add(ys[1].MulScalar(delta[1]))
	loss.Backward()

	local := mat.NewVecDense(2, nil)
	for i, y := range ys {
		local.SetVec(i, delta[i]*(1-y.Data()*y.Data()))
	}
	var want mat.Dense
	want.Outer(1, local, mat.NewVecDense(3, x))

	for i, n := range layer.Neurons() {
		for j, w := range n.Weights() {
			assert.InDelta(t, want.At(i, j), w.Grad(), 1e-12, "w[%d][%d]", i, j)
		}
		assert.InDelta(t, local.AtVec(i), n.Bias().Grad(), 1e-12, "b[%d]", i)
	}
}
