package compiler

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowset/flowset/internal/graph"
)

func compile(t *testing.T, src string) (*graph.Definition, error) {
	t.Helper()

	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	return CompileGraph(v)
}

func TestCompileGraph_Chain(t *testing.T) {
	def, err := compile(t, `
graph: {
	nodes: [
		{id: 1, unload: 10, load: 20},
		{id: 2, unload: 30, load: 40},
		{id: 3, unload: 20, load: 50},
	]
	edges: [
		{from: 1, to: 2},
		{from: 2, to: 3},
	]
	entry: 1
}
`)
	require.NoError(t, err)

	assert.Equal(t, []graph.Node{
		{ID: 1, Unload: 10, Load: 20},
		{ID: 2, Unload: 30, Load: 40},
		{ID: 3, Unload: 20, Load: 50},
	}, def.Nodes)
	assert.Equal(t, []graph.Edge{{From: 1, To: 2}, {From: 2, To: 3}}, def.Edges)
	assert.Equal(t, 1, def.Entry)

	g, err := def.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
}

func TestCompileGraph_EdgesOptional(t *testing.T) {
	def, err := compile(t, `
graph: {
	nodes: [{id: 7, unload: 1, load: 2}]
	entry: 7
}
`)
	require.NoError(t, err)

	assert.Empty(t, def.Edges)
	assert.Equal(t, 7, def.Entry)
}

func TestCompileGraph_NegativeValues(t *testing.T) {
	def, err := compile(t, `
graph: {
	nodes: [{id: 1, unload: -5, load: -6}]
	entry: 1
}
`)
	require.NoError(t, err)

	assert.Equal(t, -5, def.Nodes[0].Unload)
	assert.Equal(t, -6, def.Nodes[0].Load)
}

func TestCompileGraph_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing graph struct",
			src:  `other: 1`,
			want: "graph struct is required",
		},
		{
			name: "missing nodes",
			src:  `graph: {entry: 1}`,
			want: "nodes list is required",
		},
		{
			name: "empty nodes",
			src:  `graph: {nodes: [], entry: 1}`,
			want: "at least one node is required",
		},
		{
			name: "node missing id",
			src:  `graph: {nodes: [{unload: 1, load: 2}], entry: 1}`,
			want: "id is required",
		},
		{
			name: "node missing load",
			src:  `graph: {nodes: [{id: 1, unload: 1}], entry: 1}`,
			want: "load is required",
		},
		{
			name: "non-integer unload",
			src:  `graph: {nodes: [{id: 1, unload: "x", load: 2}], entry: 1}`,
			want: "graph.nodes[0].unload",
		},
		{
			name: "edge missing to",
			src:  `graph: {nodes: [{id: 1, unload: 1, load: 2}], edges: [{from: 1}], entry: 1}`,
			want: "to is required",
		},
		{
			name: "missing entry",
			src:  `graph: {nodes: [{id: 1, unload: 1, load: 2}]}`,
			want: "entry is required",
		},
		{
			name: "non-integer entry",
			src:  `graph: {nodes: [{id: 1, unload: 1, load: 2}], entry: "one"}`,
			want: "graph.entry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compile(t, tt.src)
			require.Error(t, err)

			var cerr *CompileError
			require.ErrorAs(t, err, &cerr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompileGraph_NodesNotAList(t *testing.T) {
	_, err := compile(t, `graph: {nodes: "nope", entry: 1}`)
	require.Error(t, err)

	var cerr *CompileError
	assert.ErrorAs(t, err, &cerr)
}
