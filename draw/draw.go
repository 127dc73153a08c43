// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package draw renders computation graphs with Graphviz.
//
// Example:
//
//	out := a.Mul(b).Tanh()
//	out.Backward()
//
//	src, err := draw.DOT(out, draw.Options{RankDir: draw.RankTB})
package draw

import (
	"context"
	"io"

	"github.com/born-ml/micrograd/internal/draw"
	"github.com/born-ml/micrograd/internal/engine"
)

// Rank directions.
const (
	RankLR = draw.RankLR
	RankTB = draw.RankTB
)

// Errors.
var (
	ErrRankDir    = draw.ErrRankDir
	ErrNoGraphviz = draw.ErrNoGraphviz
)

// Options controls DOT generation and rendering.
type Options = draw.Options

// Edge connects a child to the parent that consumes it.
type Edge = draw.Edge

// Trace collects every node and child->parent edge under root.
func Trace(root *engine.Value) ([]*engine.Value, []Edge) {
	return draw.Trace(root)
}

// DOT returns the Graphviz source for the graph under root.
func DOT(root *engine.Value, opts Options) (string, error) {
	return draw.DOT(root, opts)
}

// WriteDOT writes the Graphviz source for the graph under root to w.
func WriteDOT(w io.Writer, root *engine.Value, opts Options) error {
	return draw.WriteDOT(w, root, opts)
}

// Render runs the dot executable and writes the image to w.
func Render(ctx context.Context, w io.Writer, root *engine.Value, opts Options) error {
	return draw.Render(ctx, w, root, opts)
}
