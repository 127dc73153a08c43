// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides a full-batch training loop for MLPs.
package train

import (
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/train"
)

// Trainer runs forward, loss, backward and optimizer steps.
type Trainer = train.Trainer

// Model is a network that builds one output graph per sample.
type Model = train.Model

// Config controls a training run.
type Config = train.Config

// Record is the loss observed at one epoch.
type Record = train.Record

// ErrNoSamples is returned for an empty batch.
var ErrNoSamples = train.ErrNoSamples

// NewTrainer creates a trainer.
func NewTrainer(model Model, opt optim.Optimizer, cfg Config) *Trainer {
	return train.NewTrainer(model, opt, cfg)
}
