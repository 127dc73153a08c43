package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// MSELoss returns Σ (yᵢ - ŷᵢ)², starting from a fresh zero leaf.
//
// Each residual is squared as d*d rather than d**2 so that the constant
// exponent never carries a NaN gradient when the residual is negative.
//
// Returns ErrArity when targets and predictions differ in length.
func MSELoss(targets []float64, predictions []*engine.Value) (*engine.Value, error) {
	if len(targets) != len(predictions) {
		return nil, fmt.Errorf("mse: %w: %d targets, %d predictions", ErrArity, len(targets), len(predictions))
	}

	terms := make([]*engine.Value, len(targets))
	for i, y := range targets {
		d := engine.RSub(y, predictions[i])
		terms[i] = d.Mul(d)
	}

	return engine.Sum(engine.New(0), terms...), nil
}

// MSELossBatch flattens per-sample targets and predictions and returns their
// MSELoss.
func MSELossBatch(targets [][]float64, predictions [][]*engine.Value) (*engine.Value, error) {
	if len(targets) != len(predictions) {
		return nil, fmt.Errorf("mse: %w: %d target rows, %d prediction rows", ErrArity, len(targets), len(predictions))
	}

	var ys []float64
	var preds []*engine.Value
	for i := range targets {
		if len(targets[i]) != len(predictions[i]) {
			return nil, fmt.Errorf("mse: row %d: %w: %d targets, %d predictions",
				i, ErrArity, len(targets[i]), len(predictions[i]))
		}
		ys = append(ys, targets[i]...)
		preds = append(preds, predictions[i]...)
	}

	return MSELoss(ys, preds)
}
