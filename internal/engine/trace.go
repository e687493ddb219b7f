package engine

import "sync"

// PassEvent records one engine pass: the node that was recomputed and
// its input/output sets, decoded to flow-value identifiers in ascending
// order. Seq is a logical sequence number starting at 1; wall time never
// appears, so traces compare byte-for-byte across runs.
type PassEvent struct {
	Seq    int64 `json:"seq"`
	Node   int   `json:"node"`
	Input  []int `json:"input"`
	Output []int `json:"output"`
}

// Recorder collects PassEvents for an Analyze run. Attach one via
// WithRecorder to drive --trace output and golden trace tests; without
// one the engine records nothing.
type Recorder struct {
	mu     sync.Mutex
	seq    int64
	events []PassEvent
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// record appends an event, stamping it with the next sequence number.
func (r *Recorder) record(ev PassEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	ev.Seq = r.seq
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []PassEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PassEvent, len(r.events))
	copy(out, r.events)
	return out
}
