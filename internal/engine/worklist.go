package engine

import "github.com/flowset/flowset/internal/graph"

// Policy selects how the worklist picks the next node to recompute.
// Every policy converges to the same least fixpoint; the choice only
// affects how many passes a cyclic graph takes.
type Policy int

const (
	// PolicyRPO pops the queued node with the lowest reverse-postorder
	// rank, which tends to process a node after its predecessors and so
	// minimizes repasses on cycles. The default.
	PolicyRPO Policy = iota

	// PolicyFIFO pops nodes in enqueue order. Kept selectable so the
	// order-independence of the result is testable.
	PolicyFIFO
)

// worklist is the set of nodes pending recomputation. Membership is
// deduplicated: pushing a queued node is a no-op.
type worklist struct {
	policy Policy
	rank   []int
	items  []int
	queued []bool
}

func newWorklist(policy Policy, rank []int, n int) *worklist {
	return &worklist{
		policy: policy,
		rank:   rank,
		items:  make([]int, 0, n),
		queued: make([]bool, n),
	}
}

// Push queues a node and reports whether it was newly added.
func (w *worklist) Push(node int) bool {
	if w.queued[node] {
		return false
	}
	w.queued[node] = true
	w.items = append(w.items, node)
	return true
}

// Pop removes and returns the next node per the policy.
func (w *worklist) Pop() (int, bool) {
	if len(w.items) == 0 {
		return 0, false
	}
	best := 0
	if w.policy == PolicyRPO {
		for i := 1; i < len(w.items); i++ {
			if w.less(w.items[i], w.items[best]) {
				best = i
			}
		}
	}
	node := w.items[best]
	w.items = append(w.items[:best], w.items[best+1:]...)
	w.queued[node] = false
	return node, true
}

// less orders nodes by reverse-postorder rank. Unranked (unreachable)
// nodes sort last; only successors of processed nodes are ever pushed,
// so in practice they never appear.
func (w *worklist) less(a, b int) bool {
	ra, rb := w.rank[a], w.rank[b]
	if ra == graph.UnrankedNode {
		return false
	}
	if rb == graph.UnrankedNode {
		return true
	}
	return ra < rb
}

// Len returns the number of queued nodes.
func (w *worklist) Len() int {
	return len(w.items)
}
