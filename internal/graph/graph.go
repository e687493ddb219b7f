// Package graph provides the immutable graph model the analysis runs
// over: nodes with unload/load attributes, directed edges, forward and
// reverse adjacency, and reverse-postorder ranking.
package graph

// Node is a graph vertex. Unload and Load are the flow values the
// node's transfer function removes and adds, in that order.
type Node struct {
	ID     int
	Unload int
	Load   int
}

// Edge is a directed connection between two node IDs. Parallel edges,
// self-loops, and cycles are all legal.
type Edge struct {
	From int
	To   int
}

// Definition is the adapter-facing description of a graph. Both the
// line-oriented text parser and the CUE compiler produce one.
type Definition struct {
	Nodes []Node
	Edges []Edge
	Entry int
}

// Build constructs the immutable graph from this definition.
func (d *Definition) Build() (*Graph, error) {
	return Build(d.Nodes, d.Edges, d.Entry)
}

// Graph is the immutable adjacency model. Each node is assigned a dense
// index equal to its declaration position; adjacency lists hold dense
// indices in edge declaration order, duplicates preserved.
type Graph struct {
	nodes []Node
	byID  map[int]int // node ID -> dense index
	succs [][]int
	preds [][]int
	entry int // dense index
}

// Build validates the node and edge lists and constructs the graph.
//
// Construction fails with DuplicateNodeIDError if two nodes share an ID,
// and with UnknownNodeError if an edge endpoint or the entry references
// an ID no node declares. No partial graph is returned on failure.
func Build(nodes []Node, edges []Edge, entryID int) (*Graph, error) {
	byID := make(map[int]int, len(nodes))
	for i, n := range nodes {
		if _, ok := byID[n.ID]; ok {
			return nil, &DuplicateNodeIDError{ID: n.ID}
		}
		byID[n.ID] = i
	}

	succs := make([][]int, len(nodes))
	preds := make([][]int, len(nodes))
	for _, e := range edges {
		from, ok := byID[e.From]
		if !ok {
			return nil, &UnknownNodeError{Ref: "edge source", ID: e.From}
		}
		to, ok := byID[e.To]
		if !ok {
			return nil, &UnknownNodeError{Ref: "edge target", ID: e.To}
		}
		succs[from] = append(succs[from], to)
		preds[to] = append(preds[to], from)
	}

	entry, ok := byID[entryID]
	if !ok {
		return nil, &UnknownNodeError{Ref: "entry", ID: entryID}
	}

	g := &Graph{
		nodes: make([]Node, len(nodes)),
		byID:  byID,
		succs: succs,
		preds: preds,
		entry: entry,
	}
	copy(g.nodes, nodes)
	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node at the given dense index.
func (g *Graph) Node(i int) Node {
	return g.nodes[i]
}

// IndexOf returns the dense index of a node ID.
func (g *Graph) IndexOf(id int) (int, bool) {
	i, ok := g.byID[id]
	return i, ok
}

// Entry returns the dense index of the entry node.
func (g *Graph) Entry() int {
	return g.entry
}

// Succs returns the successor dense indices of node i in edge
// declaration order. Callers must not mutate the returned slice.
func (g *Graph) Succs(i int) []int {
	return g.succs[i]
}

// Preds returns the predecessor dense indices of node i in edge
// declaration order. Callers must not mutate the returned slice.
func (g *Graph) Preds(i int) []int {
	return g.preds[i]
}

// FlowValues returns every unload and load value across all nodes,
// duplicates included. This is the raw material for the flow universe.
func (g *Graph) FlowValues() []int {
	out := make([]int, 0, 2*len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n.Unload, n.Load)
	}
	return out
}
