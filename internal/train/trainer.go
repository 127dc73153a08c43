// Package train runs gradient-descent loops over an MLP and a batch of samples.
package train

import (
	"errors"
	"fmt"
	"log"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
)

// ErrNoSamples is returned when Step or Fit is called with an empty batch.
var ErrNoSamples = errors.New("no training samples")

// Model is a network that can build one output graph per sample.
type Model interface {
	nn.Module
	ForwardBatch(xs [][]float64) ([][]*engine.Value, error)
}

// Config controls a training run.
type Config struct {
	Epochs      int         // Number of Step calls made by Fit (default: 100)
	LogEvery    int         // Log the loss every LogEvery epochs (default: 50)
	Logger      *log.Logger // Destination for progress lines (default: none)
	CheckFinite bool        // Fail a step whose graph holds NaN or Inf
}

// Record is the loss observed at one epoch.
type Record struct {
	Epoch int
	Loss  float64
}

// Trainer runs the training loop: forward, loss, backward, step.
type Trainer struct {
	Model     Model
	Optimizer optim.Optimizer
	config    Config
}

// NewTrainer creates a trainer.
func NewTrainer(model Model, opt optim.Optimizer, cfg Config) *Trainer {
	if cfg.Epochs <= 0 {
		cfg.Epochs = 100
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 50
	}
	return &Trainer{Model: model, Optimizer: opt, config: cfg}
}

// Config returns the effective configuration.
func (t *Trainer) Config() Config {
	return t.config
}

// Step runs one full-batch update and returns the loss measured before it.
//
// Gradients are cleared before the backward pass, so stale gradients left by
// a caller never leak into the update.
func (t *Trainer) Step(xs, ys [][]float64) (float64, error) {
	loss, err := t.Loss(xs, ys)
	if err != nil {
		return 0, err
	}

	t.Optimizer.ZeroGrad()
	loss.Backward()

	if t.config.CheckFinite {
		if err := engine.CheckFinite(loss); err != nil {
			return 0, err
		}
	}

	t.Optimizer.Step()
	return loss.Data(), nil
}

// Loss builds the summed squared error graph of the model over the batch.
func (t *Trainer) Loss(xs, ys [][]float64) (*engine.Value, error) {
	if len(xs) == 0 {
		return nil, ErrNoSamples
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("train: %w: %d inputs, %d targets", nn.ErrArity, len(xs), len(ys))
	}

	preds, err := t.Model.ForwardBatch(xs)
	if err != nil {
		return nil, err
	}
	return nn.MSELossBatch(ys, preds)
}

// Fit runs Config.Epochs steps and returns the loss of every epoch.
func (t *Trainer) Fit(xs, ys [][]float64) ([]Record, error) {
	history := make([]Record, 0, t.config.Epochs)

	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		loss, err := t.Step(xs, ys)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		history = append(history, Record{Epoch: epoch, Loss: loss})

		if t.config.Logger != nil && (epoch%t.config.LogEvery == 0 || epoch == t.config.Epochs-1) {
			t.config.Logger.Printf("epoch %d loss %.6f", epoch, loss)
		}
	}

	return history, nil
}
