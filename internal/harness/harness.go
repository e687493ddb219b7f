package harness

import (
	"fmt"
	"sort"

	"github.com/flowset/flowset/internal/engine"
	"github.com/flowset/flowset/internal/parser"
)

// Result holds a scenario execution: the run identity, the full pass
// trace, and any expectation mismatches.
type Result struct {
	RunToken string
	Passes   int
	Trace    []engine.PassEvent
	Errors   []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}

// Run executes a scenario: parse and build the graph, run the engine
// under the scenario's fixed run token with a trace recorder attached,
// then check every expect clause against the converged result.
func Run(scenario *Scenario) (*Result, error) {
	def, err := parser.ParseString(scenario.Graph)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: parse graph: %w", scenario.Name, err)
	}
	g, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: build graph: %w", scenario.Name, err)
	}

	token := scenario.RunToken
	if token == "" {
		token = DefaultRunToken
	}

	rec := engine.NewRecorder()
	opts := []engine.Option{
		engine.WithRecorder(rec),
		engine.WithTokenGenerator(engine.NewFixedGenerator(token)),
	}
	if scenario.MaxPasses > 0 {
		opts = append(opts, engine.WithMaxPasses(scenario.MaxPasses))
	}

	analysis, err := engine.New(g, opts...).Analyze()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{
		RunToken: analysis.RunToken(),
		Passes:   analysis.Passes(),
		Trace:    rec.Events(),
	}
	checkExpectations(scenario, analysis, result)
	return result, nil
}

// checkExpectations compares the converged input sets against the
// scenario's expect map, in ascending node-ID order so failure output
// is stable.
func checkExpectations(scenario *Scenario, analysis *engine.Result, result *Result) {
	ids := make([]int, 0, len(scenario.Expect))
	for id := range scenario.Expect {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		want := scenario.Expect[id]
		got := analysis.At(id)
		if got == nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("node %d: expected %v, but node is not in the graph", id, want))
			continue
		}
		if !equalInts(want, got) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("node %d: expected input set %v, got %v", id, want, got))
		}
	}
}

// equalInts compares two int slices element-wise, treating nil and
// empty as equal.
func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
