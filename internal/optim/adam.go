package optim

import (
	"math"

	"github.com/born-ml/micrograd/internal/engine"
)

// Adam implements the Adam optimizer with bias correction.
//
// For each parameter with gradient g at timestep t:
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g²
//	param -= lr * (m/(1-beta1^t)) / (sqrt(v/(1-beta2^t)) + eps)
type Adam struct {
	params []*engine.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                       // Timestep for bias correction
	m      map[*engine.Value]float64 // First moment estimates
	v      map[*engine.Value]float64 // Second moment estimates
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer over params.
func NewAdam(params []*engine.Value, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*engine.Value]float64),
		v:      make(map[*engine.Value]float64),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		g := param.Grad()

		m := a.beta1*a.m[param] + (1.0-a.beta1)*g
		v := a.beta2*a.v[param] + (1.0-a.beta2)*g*g
		a.m[param] = m
		a.v[param] = v

		mHat := m / biasCorrection1
		vHat := v / biasCorrection2

		param.SetData(param.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrads(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}
