// Package optim implements gradient-descent optimizers over scalar parameters.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read Grad() from each parameter after a backward pass and
// overwrite Data() in place. They never run Backward themselves.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    loss := computeLoss(model, data)
//	    loss.Backward()
//
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"github.com/born-ml/micrograd/internal/engine"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad resets the gradient of every parameter.
	//
	// The engine accumulates gradients across backward passes, so this must
	// run between independent passes.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// zeroGrads resets the gradient of every parameter.
func zeroGrads(params []*engine.Value) {
	engine.ZeroGrads(params...)
}
