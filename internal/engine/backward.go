package engine

// Topo returns every node reachable from v in post-order: each node appears
// strictly after all of its children, and v itself comes last.
//
// Nodes are identified by pointer, so a node shared by several parents is
// listed once. The traversal uses an explicit stack and is not bounded by
// the goroutine stack depth.
func (v *Value) Topo() []*Value {
	type frame struct {
		node *Value
		next int // index of the next child to visit
	}

	order := make([]*Value, 0, 16)
	visited := map[*Value]struct{}{v: {}}
	stack := []frame{{node: v}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			if _, seen := visited[child]; !seen {
				visited[child] = struct{}{}
				stack = append(stack, frame{node: child})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order
}

// Backward computes the gradient of v with respect to every node reachable
// from it.
//
// Algorithm:
//  1. Order the graph with Topo (children before parents)
//  2. Seed v.grad = 1
//  3. Run each node's backward rule from v down to the leaves
//
// Walking the post-order in reverse guarantees that every parent of a node
// has pushed its contribution before the node's own rule runs.
//
// Other gradients are not reset: calling Backward twice without ZeroGrads
// accumulates.
func (v *Value) Backward() {
	topo := v.Topo()

	v.grad = 1
	for i := len(topo) - 1; i >= 0; i-- {
		topo[i].backward()
	}
}

// ZeroGrads resets the gradient of every given value.
func ZeroGrads(values ...*Value) {
	for _, v := range values {
		v.grad = 0
	}
}

// ZeroGraph resets the gradient of every node reachable from root.
func ZeroGraph(root *Value) {
	ZeroGrads(root.Topo()...)
}
