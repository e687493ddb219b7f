package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScenario(t *testing.T, name string) *Scenario {
	t.Helper()

	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_Chain(t *testing.T) {
	result, err := Run(loadScenario(t, "chain"))
	require.NoError(t, err)

	assert.True(t, result.Passed(), "unexpected errors: %v", result.Errors)
	assert.Equal(t, "run-chain", result.RunToken)
	assert.Equal(t, 3, result.Passes)
	assert.Len(t, result.Trace, 3)
}

func TestRun_Cycle(t *testing.T) {
	result, err := Run(loadScenario(t, "cycle"))
	require.NoError(t, err)

	assert.True(t, result.Passed(), "unexpected errors: %v", result.Errors)
	assert.Len(t, result.Trace, 4)
}

func TestRun_Diamond(t *testing.T) {
	result, err := Run(loadScenario(t, "diamond"))
	require.NoError(t, err)

	assert.True(t, result.Passed(), "unexpected errors: %v", result.Errors)
}

func TestRun_ExpectationMismatch(t *testing.T) {
	s := loadScenario(t, "chain")
	s.Expect[3] = []int{99}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "node 3")
	assert.Contains(t, result.Errors[0], "[99]")
}

func TestRun_ExpectUnknownNode(t *testing.T) {
	s := loadScenario(t, "chain")
	s.Expect[42] = []int{1}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Passed())
	assert.Contains(t, result.Errors[0], "not in the graph")
}

func TestRun_MalformedGraph(t *testing.T) {
	s := &Scenario{
		Name:        "broken",
		Description: "graph body is not the line format",
		Graph:       "not a graph\n",
		Expect:      map[int][]int{1: {}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse graph")
}

func TestRun_PassBudget(t *testing.T) {
	s := loadScenario(t, "cycle")
	s.MaxPasses = 1

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass budget")
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\ngraph: g\nexpect: {1: []}\n",
			want: "name is required",
		},
		{
			name: "missing graph",
			yaml: "name: n\ndescription: d\nexpect: {1: []}\n",
			want: "graph is required",
		},
		{
			name: "missing expect",
			yaml: "name: n\ndescription: d\ngraph: g\n",
			want: "expect map is required",
		},
		{
			name: "unknown field",
			yaml: "name: n\ndescription: d\ngraph: g\nexpect: {1: []}\nexpects: {}\n",
			want: "parse scenario YAML",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario.yaml")
			writeFile(t, path, tt.yaml)

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_NotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}
