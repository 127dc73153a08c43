// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is the common interface of every network component.
type Module = nn.Module

// ErrArity reports an input or target sequence of the wrong length.
var ErrArity = nn.ErrArity

// Inputs wraps raw numbers into fresh leaf Values.
func Inputs(x []float64) []*engine.Value {
	return nn.Inputs(x)
}

// Neuron computes tanh(bias + Σ wᵢxᵢ).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with inputSize weights drawn from U(-1, 1).
func NewNeuron(inputSize int, name string, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(inputSize, name, rng)
}

// Layer is a row of independent neurons sharing the same inputs.
type Layer = nn.Layer

// NewLayer creates a layer of outputSize neurons.
func NewLayer(inputSize, outputSize int, name string, rng *rand.Rand) *Layer {
	return nn.NewLayer(inputSize, outputSize, name, rng)
}

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// Config controls MLP construction.
type Config = nn.Config

// NewMLP creates an MLP.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4}, 1, nn.Config{})
func NewMLP(inputSize int, hidden []int, outputSize int, cfg Config) *MLP {
	return nn.NewMLP(inputSize, hidden, outputSize, cfg)
}

// MSELoss returns Σ (yᵢ - ŷᵢ)².
func MSELoss(targets []float64, predictions []*engine.Value) (*engine.Value, error) {
	return nn.MSELoss(targets, predictions)
}

// MSELossBatch returns the MSELoss over per-sample rows.
func MSELossBatch(targets [][]float64, predictions [][]*engine.Value) (*engine.Value, error) {
	return nn.MSELossBatch(targets, predictions)
}

// Checkpoint is a training state snapshot.
type Checkpoint = nn.Checkpoint

// LoadCheckpoint reads a checkpoint from path into model.
func LoadCheckpoint(path string, model Module) (*Checkpoint, error) {
	return nn.LoadCheckpoint(path, model)
}
