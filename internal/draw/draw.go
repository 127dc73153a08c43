// Package draw exports a computation graph as Graphviz DOT source.
//
// Every Value becomes a record node "{label | data | grad}". Non-leaf values
// get an extra small node holding their operator, wired op -> value, and each
// child is wired into its parent's operator node. The graph is only read.
package draw

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/born-ml/micrograd/internal/engine"
)

// Rank directions.
const (
	RankLR = "LR" // left to right
	RankTB = "TB" // top to bottom
)

// Common errors.
var (
	ErrRankDir    = errors.New("rank direction must be LR or TB")
	ErrNoGraphviz = errors.New("graphviz dot executable not found")
)

// Options controls DOT generation.
type Options struct {
	RankDir string // RankLR (default) or RankTB
	Format  string // Output format for Render, e.g. "svg" or "png" (default: "svg")
}

// Edge connects a child to the parent that consumes it.
type Edge struct {
	From *engine.Value // child
	To   *engine.Value // parent
}

// Trace collects every node reachable from root and every child->parent
// edge, in topological order. A child used twice by the same parent yields
// a single edge.
func Trace(root *engine.Value) ([]*engine.Value, []Edge) {
	nodes := root.Topo()

	type key struct{ from, to *engine.Value }
	seen := make(map[key]struct{})

	var edges []Edge
	for _, n := range nodes {
		for _, child := range n.Children() {
			k := key{child, n}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			edges = append(edges, Edge{From: child, To: n})
		}
	}
	return nodes, edges
}

// WriteDOT writes the DOT source for the graph under root to w.
func WriteDOT(w io.Writer, root *engine.Value, opts Options) error {
	rankDir := opts.RankDir
	if rankDir == "" {
		rankDir = RankLR
	}
	if rankDir != RankLR && rankDir != RankTB {
		return fmt.Errorf("%w: got %q", ErrRankDir, opts.RankDir)
	}

	nodes, edges := Trace(root)
	ids := make(map[*engine.Value]string, len(nodes))
	for i, n := range nodes {
		ids[n] = fmt.Sprintf("n%d", i)
	}

	var b strings.Builder
	b.WriteString("digraph {\n")
	fmt.Fprintf(&b, "\tgraph [rankdir=%s]\n", rankDir)

	for _, n := range nodes {
		id := ids[n]
		label := fmt.Sprintf("{ %s | data %.4f | grad %.4f }", escapeRecord(n.Label()), n.Data(), n.Grad())
		fmt.Fprintf(&b, "\t%s [label=%s shape=record]\n", quote(id), quote(label))
		if op := n.Op().String(); op != "" {
			fmt.Fprintf(&b, "\t%s [label=%s]\n", quote(id+op), quote(op))
			fmt.Fprintf(&b, "\t%s -> %s\n", quote(id+op), quote(id))
		}
	}

	for _, e := range edges {
		fmt.Fprintf(&b, "\t%s -> %s\n", quote(ids[e.From]), quote(ids[e.To]+e.To.Op().String()))
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// DOT returns the DOT source for the graph under root.
func DOT(root *engine.Value, opts Options) (string, error) {
	var b strings.Builder
	if err := WriteDOT(&b, root, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render pipes the DOT source through the Graphviz dot executable and writes
// the rendered image (opts.Format) to w.
func Render(ctx context.Context, w io.Writer, root *engine.Value, opts Options) error {
	format := opts.Format
	if format == "" {
		format = "svg"
	}

	dotPath, err := exec.LookPath("dot")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGraphviz, err)
	}

	src, err := DOT(root, opts)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	//nolint:gosec // G204: format is passed as a single -T argument, not through a shell
	cmd := exec.CommandContext(ctx, dotPath, "-T"+format)
	cmd.Stdin = strings.NewReader(src)
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dot -T%s: %w: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// quote returns s as a DOT double-quoted string. DOT only unescapes \" inside
// quotes, so other backslashes pass through to the record parser.
func quote(s string) string {
	r := strings.NewReplacer(`"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// escapeRecord escapes characters that structure record labels.
func escapeRecord(s string) string {
	r := strings.NewReplacer(`{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`)
	return r.Replace(s)
}
