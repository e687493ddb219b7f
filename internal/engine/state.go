package engine

import "github.com/flowset/flowset/internal/flow"

// nodeStatus tracks the per-node scheduling state machine:
// unvisited -> queued -> processed, with processed nodes re-entering
// queued whenever a predecessor's output grows.
type nodeStatus uint8

const (
	statusUnvisited nodeStatus = iota
	statusQueued
	statusProcessed
)

// stateTable is the mutable per-node store, array-backed and keyed by
// the graph's dense node index. It is local to one Analyze call; the
// engine itself stays a pure function of the graph.
type stateTable struct {
	status []nodeStatus
	in     []*flow.Set
	out    []*flow.Set
}

func newStateTable(n int, u *flow.Universe) *stateTable {
	st := &stateTable{
		status: make([]nodeStatus, n),
		in:     make([]*flow.Set, n),
		out:    make([]*flow.Set, n),
	}
	for i := 0; i < n; i++ {
		st.in[i] = u.NewSet()
		st.out[i] = u.NewSet()
	}
	return st
}
