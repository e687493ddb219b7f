package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainDef() *Definition {
	return &Definition{
		Nodes: []Node{
			{ID: 1, Unload: 10, Load: 20},
			{ID: 2, Unload: 30, Load: 40},
			{ID: 3, Unload: 20, Load: 50},
		},
		Edges: []Edge{{From: 1, To: 2}, {From: 2, To: 3}},
		Entry: 1,
	}
}

func TestBuild_Chain(t *testing.T) {
	g, err := chainDef().Build()
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 0, g.Entry())

	i, ok := g.IndexOf(2)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, Node{ID: 2, Unload: 30, Load: 40}, g.Node(i))

	assert.Equal(t, []int{1}, g.Succs(0))
	assert.Equal(t, []int{2}, g.Succs(1))
	assert.Empty(t, g.Succs(2))
	assert.Empty(t, g.Preds(0))
	assert.Equal(t, []int{0}, g.Preds(1))
	assert.Equal(t, []int{1}, g.Preds(2))
}

func TestBuild_NonContiguousIDs(t *testing.T) {
	def := &Definition{
		Nodes: []Node{
			{ID: 100, Unload: 1, Load: 2},
			{ID: 7, Unload: 3, Load: 4},
		},
		Edges: []Edge{{From: 100, To: 7}},
		Entry: 100,
	}
	g, err := def.Build()
	require.NoError(t, err)

	i, ok := g.IndexOf(7)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, []int{1}, g.Succs(0))
}

func TestBuild_DuplicateNodeID(t *testing.T) {
	def := chainDef()
	def.Nodes = append(def.Nodes, Node{ID: 2, Unload: 0, Load: 0})

	_, err := def.Build()
	require.Error(t, err)
	assert.True(t, IsDuplicateNodeIDError(err))
	assert.Contains(t, err.Error(), "duplicate node id 2")
}

func TestBuild_UnknownEdgeEndpoints(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want string
	}{
		{"unknown source", Edge{From: 9, To: 1}, "edge source references unknown node 9"},
		{"unknown target", Edge{From: 1, To: 9}, "edge target references unknown node 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := chainDef()
			def.Edges = append(def.Edges, tt.edge)

			_, err := def.Build()
			require.Error(t, err)
			assert.True(t, IsUnknownNodeError(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestBuild_UnknownEntry(t *testing.T) {
	def := chainDef()
	def.Entry = 42

	_, err := def.Build()
	require.Error(t, err)
	assert.True(t, IsUnknownNodeError(err))
	assert.Contains(t, err.Error(), "entry references unknown node 42")
}

func TestBuild_SelfLoopAndParallelEdgesAreLegal(t *testing.T) {
	def := chainDef()
	def.Edges = append(def.Edges, Edge{From: 2, To: 2}, Edge{From: 1, To: 2})

	g, err := def.Build()
	require.NoError(t, err)

	// Declaration order preserved, duplicates kept.
	assert.Equal(t, []int{1, 1}, g.Succs(0))
	assert.Equal(t, []int{2, 1}, g.Succs(1))
	assert.Equal(t, []int{0, 1, 0}, g.Preds(1))
}

func TestBuild_CopiesNodeSlice(t *testing.T) {
	def := chainDef()
	g, err := def.Build()
	require.NoError(t, err)

	def.Nodes[0].Load = 999
	assert.Equal(t, 20, g.Node(0).Load, "graph must not alias the caller's node slice")
}

func TestFlowValues(t *testing.T) {
	g, err := chainDef().Build()
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20, 30, 40, 20, 50}, g.FlowValues())
}

func TestReversePostorder_Chain(t *testing.T) {
	g, err := chainDef().Build()
	require.NoError(t, err)

	rank := g.ReversePostorder()
	assert.Equal(t, []int{0, 1, 2}, rank)
}

func TestReversePostorder_Diamond(t *testing.T) {
	def := &Definition{
		Nodes: []Node{
			{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4},
		},
		Edges: []Edge{
			{From: 1, To: 2},
			{From: 1, To: 3},
			{From: 2, To: 4},
			{From: 3, To: 4},
		},
		Entry: 1,
	}
	g, err := def.Build()
	require.NoError(t, err)

	// DFS explores 1 -> 2 -> 4 first, so postorder is 4, 2, 3, 1 and the
	// reverse-postorder ranks 3 ahead of 2.
	rank := g.ReversePostorder()
	assert.Equal(t, 0, rank[0])
	assert.Equal(t, 2, rank[1])
	assert.Equal(t, 1, rank[2])
	assert.Equal(t, 3, rank[3])
}

func TestReversePostorder_CycleVisitedOnce(t *testing.T) {
	def := &Definition{
		Nodes: []Node{{ID: 1}, {ID: 2}},
		Edges: []Edge{{From: 1, To: 2}, {From: 2, To: 1}},
		Entry: 1,
	}
	g, err := def.Build()
	require.NoError(t, err)

	rank := g.ReversePostorder()
	assert.Equal(t, []int{0, 1}, rank)
}

func TestReversePostorder_SelfLoopEntry(t *testing.T) {
	def := &Definition{
		Nodes: []Node{{ID: 1}},
		Edges: []Edge{{From: 1, To: 1}},
		Entry: 1,
	}
	g, err := def.Build()
	require.NoError(t, err)

	assert.Equal(t, []int{0}, g.ReversePostorder())
}

func TestReversePostorder_UnreachableNodesUnranked(t *testing.T) {
	def := &Definition{
		Nodes: []Node{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}},
		Edges: []Edge{{From: 1, To: 2}, {From: 2, To: 3}, {From: 4, To: 5}},
		Entry: 1,
	}
	g, err := def.Build()
	require.NoError(t, err)

	rank := g.ReversePostorder()
	assert.Equal(t, []int{0, 1, 2, UnrankedNode, UnrankedNode}, rank)
}

func TestReversePostorder_LongChainDoesNotRecurse(t *testing.T) {
	const n = 200000
	nodes := make([]Node, n)
	edges := make([]Edge, n-1)
	for i := 0; i < n; i++ {
		nodes[i] = Node{ID: i}
		if i > 0 {
			edges[i-1] = Edge{From: i - 1, To: i}
		}
	}
	g, err := Build(nodes, edges, 0)
	require.NoError(t, err)

	rank := g.ReversePostorder()
	assert.Equal(t, 0, rank[0])
	assert.Equal(t, n-1, rank[n-1])
}
