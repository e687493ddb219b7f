// Package engine computes, for every node of a directed and possibly
// cyclic graph, the least fixpoint of the forward dataflow equations
//
//	InputSet(n)  = union of OutputSet(p) over predecessors p
//	OutputSet(n) = (InputSet(n) \ {unload(n)}) ∪ {load(n)}
//
// with the entry node's input bounded at the empty set. Iteration is
// worklist-driven, preferring the queued node with the lowest
// reverse-postorder rank; any fair order converges to the same fixpoint,
// the rank only reduces repasses on cycles.
//
// The engine runs single-threaded to completion in one Analyze call. It
// performs no I/O in its loop and cannot fail once a valid graph exists,
// except for the pass-budget guard kept against future non-monotone
// transfer extensions.
package engine
