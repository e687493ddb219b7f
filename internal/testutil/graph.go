// Package testutil provides shared fixtures for analyzer tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowset/flowset/internal/graph"
	"github.com/flowset/flowset/internal/parser"
)

// MustGraph parses a graph description in the line-oriented text format
// and builds it, failing the test on any error.
func MustGraph(t *testing.T, text string) *graph.Graph {
	t.Helper()

	def, err := parser.ParseString(text)
	require.NoError(t, err)

	g, err := def.Build()
	require.NoError(t, err)
	return g
}

// Chain is the three-node chain 1 -> 2 -> 3 with entry 1. Expected
// analysis: 1 -> {}, 2 -> {20}, 3 -> {20, 40}.
const Chain = `3 2
1 10 20
2 30 40
3 20 50
1 2
2 3
1
`

// TwoCycle is the two-node cycle 1 -> 2 -> 1 with entry 1. Expected
// analysis: both nodes -> {2, 4}.
const TwoCycle = `2 2
1 1 2
2 3 4
1 2
2 1
1
`

// Diamond is the four-node diamond 1 -> {2, 3} -> 4 with entry 1.
// Expected analysis at the join: 4 -> {10, 20, 30}.
const Diamond = `4 4
1 0 10
2 10 20
3 99 30
4 0 40
1 2
1 3
2 4
3 4
1
`

// Disconnected is the chain 1 -> 2 -> 3 with entry 1 plus the isolated
// edge 4 -> 5. Expected analysis: nodes 4 and 5 -> {}.
const Disconnected = `5 3
1 10 20
2 30 40
3 20 50
4 1 2
5 3 4
1 2
2 3
4 5
1
`
