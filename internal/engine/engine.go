package engine

import (
	"log/slog"

	"github.com/flowset/flowset/internal/flow"
	"github.com/flowset/flowset/internal/graph"
)

// Engine runs the fixpoint analysis over one immutable graph. The graph,
// its flow universe, and the reverse-postorder ranks are fixed at
// construction; all mutable per-run state lives inside Analyze, so the
// same Engine can be reused and every run is independent.
type Engine struct {
	g         *graph.Graph
	universe  *flow.Universe
	rank      []int
	policy    Policy
	maxPasses int
	recorder  *Recorder
	tokens    RunTokenGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPasses overrides the pass budget. Exceeding the budget aborts
// the run with a PassBudgetError.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		e.maxPasses = n
	}
}

// WithPolicy selects the worklist ordering policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithRecorder attaches a trace recorder; every pass is recorded.
func WithRecorder(r *Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithTokenGenerator overrides the run token generator. Tests pass a
// FixedGenerator for reproducible tokens.
func WithTokenGenerator(gen RunTokenGenerator) Option {
	return func(e *Engine) {
		e.tokens = gen
	}
}

// New creates an Engine for the given graph. The flow universe is
// derived from the graph's unload/load values and the reverse-postorder
// ranks are computed once here.
func New(g *graph.Graph, opts ...Option) *Engine {
	e := &Engine{
		g:        g,
		universe: flow.NewUniverse(g.FlowValues()),
		rank:     g.ReversePostorder(),
		policy:   PolicyRPO,
		tokens:   UUIDv7Generator{},
	}
	e.maxPasses = defaultPassBudget(g.Len(), e.universe.Width())

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultPassBudget bounds total work well above the nodes × width
// passes the monotone transfer can actually take. The slack constant
// keeps tiny graphs from tripping the guard.
func defaultPassBudget(nodes, width int) int {
	return nodes*width*4 + 64
}

// Universe returns the flow universe derived from the engine's graph.
func (e *Engine) Universe() *flow.Universe {
	return e.universe
}

// Ranks returns the reverse-postorder rank per dense node index,
// graph.UnrankedNode for unreachable nodes.
func (e *Engine) Ranks() []int {
	out := make([]int, len(e.rank))
	copy(out, e.rank)
	return out
}

// Analyze runs the worklist iteration to convergence and extracts the
// result. Synchronous and single-threaded; the only possible error is
// the pass-budget guard.
func (e *Engine) Analyze() (*Result, error) {
	runToken := e.tokens.Generate()
	logger := slog.With("run", runToken)
	logger.Debug("analysis starting",
		"nodes", e.g.Len(),
		"universe_width", e.universe.Width(),
		"pass_budget", e.maxPasses,
	)

	st := newStateTable(e.g.Len(), e.universe)
	wl := newWorklist(e.policy, e.rank, e.g.Len())

	// Boundary condition: the entry's input is empty, but its output has
	// to exist before any successor reads it. If a cycle later routes
	// back into the entry it is requeued and recomputed like any other
	// node, accumulating whatever its predecessors produce.
	entry := e.g.Entry()
	st.out[entry] = transfer(e.universe, e.g.Node(entry), st.in[entry])
	st.status[entry] = statusProcessed
	e.record(e.g.Node(entry).ID, st.in[entry], st.out[entry])
	passes := 1
	for _, s := range e.g.Succs(entry) {
		if wl.Push(s) {
			st.status[s] = statusQueued
		}
	}

	for wl.Len() > 0 {
		idx, _ := wl.Pop()
		passes++
		if passes > e.maxPasses {
			return nil, &PassBudgetError{RunToken: runToken, Passes: passes, Budget: e.maxPasses}
		}

		// Fold predecessor outputs into the stored input. Accumulate,
		// never replace: under the union join this still reaches the
		// least fixpoint, and it is what keeps every stored set
		// non-decreasing regardless of worklist order.
		in := st.in[idx]
		for _, p := range e.g.Preds(idx) {
			in.UnionWith(st.out[p])
		}

		node := e.g.Node(idx)
		candidate := transfer(e.universe, node, in)
		st.status[idx] = statusProcessed

		changed := !candidate.Equal(st.out[idx])
		if changed {
			st.out[idx] = candidate
			for _, s := range e.g.Succs(idx) {
				if wl.Push(s) {
					st.status[s] = statusQueued
				}
			}
		}
		e.record(node.ID, in, st.out[idx])
		logger.Debug("node processed",
			"node", node.ID,
			"changed", changed,
			"queued", wl.Len(),
		)
	}

	logger.Debug("analysis converged", "passes", passes)
	return newResult(e.g, e.universe, st, runToken, passes), nil
}

// record forwards a pass to the attached recorder, if any.
func (e *Engine) record(nodeID int, in, out *flow.Set) {
	if e.recorder == nil {
		return
	}
	e.recorder.record(PassEvent{
		Node:   nodeID,
		Input:  e.universe.Decode(in),
		Output: e.universe.Decode(out),
	})
}
