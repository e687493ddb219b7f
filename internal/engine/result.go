package engine

import (
	"sort"

	"github.com/flowset/flowset/internal/flow"
	"github.com/flowset/flowset/internal/graph"
)

// Result holds the converged analysis: for every node ID, the final
// input and output sets decoded back to flow-value identifiers in
// ascending order. Unreached nodes carry empty sets. Immutable.
type Result struct {
	runToken string
	passes   int
	ids      []int // ascending
	inputs   map[int][]int
	outputs  map[int][]int
}

// newResult extracts a Result from the terminal engine state. Cost is
// O(universe width) per node.
func newResult(g *graph.Graph, u *flow.Universe, st *stateTable, runToken string, passes int) *Result {
	r := &Result{
		runToken: runToken,
		passes:   passes,
		ids:      make([]int, 0, g.Len()),
		inputs:   make(map[int][]int, g.Len()),
		outputs:  make(map[int][]int, g.Len()),
	}
	for i := 0; i < g.Len(); i++ {
		id := g.Node(i).ID
		r.ids = append(r.ids, id)
		r.inputs[id] = u.Decode(st.in[i])
		r.outputs[id] = u.Decode(st.out[i])
	}
	sort.Ints(r.ids)
	return r
}

// RunToken returns the correlation token of the run that produced this
// result.
func (r *Result) RunToken() string {
	return r.runToken
}

// Passes returns how many worklist passes the run took, the entry
// bootstrap included.
func (r *Result) Passes() int {
	return r.passes
}

// NodeIDs returns all node IDs in ascending order.
func (r *Result) NodeIDs() []int {
	out := make([]int, len(r.ids))
	copy(out, r.ids)
	return out
}

// At returns the final input set of a node as ascending flow-value
// identifiers, or nil for an unknown node ID. This is the analysis
// answer for the node.
func (r *Result) At(id int) []int {
	return r.inputs[id]
}

// OutputAt returns the final output set of a node. Diagnostic; the
// analysis answer is At.
func (r *Result) OutputAt(id int) []int {
	return r.outputs[id]
}

// Sets returns a copy of the full node-ID-to-input-set mapping.
func (r *Result) Sets() map[int][]int {
	out := make(map[int][]int, len(r.inputs))
	for id, vals := range r.inputs {
		c := make([]int, len(vals))
		copy(c, vals)
		out[id] = c
	}
	return out
}
