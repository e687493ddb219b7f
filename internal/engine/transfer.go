package engine

import (
	"fmt"

	"github.com/flowset/flowset/internal/flow"
	"github.com/flowset/flowset/internal/graph"
)

// transfer applies a node's transfer function to an input set: copy,
// clear the unload bit, set the load bit. Pure; the input is never
// mutated.
//
// Unload is applied before load, so a node with unload == load nets to
// "value present" rather than a transient removal.
func transfer(u *flow.Universe, n graph.Node, in *flow.Set) *flow.Set {
	out := in.Clone()
	out.Remove(mustIndex(u, n.Unload))
	out.Add(mustIndex(u, n.Load))
	return out
}

// mustIndex resolves a flow value to its dense index. The universe is
// derived from the same graph the engine runs over, so a miss is a
// broken invariant, not an input error.
func mustIndex(u *flow.Universe, value int) int {
	i, ok := u.Index(value)
	if !ok {
		panic(fmt.Sprintf("engine: flow value %d missing from universe", value))
	}
	return i
}
