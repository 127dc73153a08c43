// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks over scalar Values.
//
// # Overview
//
// This package contains:
//   - Neuron: tanh(w·x + b) with uniform [-1, 1) initialization
//   - Layer: a row of independent neurons
//   - MLP: a stack of layers named L1..Ln
//   - MSELoss: summed squared error between targets and predictions
//   - Checkpoint: parameter snapshots on disk
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/micrograd/nn"
//	)
//
//	func main() {
//	    model := nn.NewMLP(3, []int{4, 4}, 1, nn.Config{Rand: rand.New(rand.NewSource(1))})
//
//	    preds, err := model.ForwardBatch(xs)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    loss, err := nn.MSELossBatch(ys, preds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model.ZeroGrad()
//	    loss.Backward()
//	}
//
// # Parameters
//
// Every weight and bias is a leaf *engine.Value labeled after its position,
// for example "L2-3w0" for weight 0 of neuron 3 in layer 2. Checkpoints use
// these labels as entry names.
package nn
