// Package compiler turns CUE graph definitions into the same
// graph.Definition the plain-text parser produces. The expected shape:
//
//	graph: {
//	    nodes: [{id: 1, unload: 10, load: 20}, ...]
//	    edges: [{from: 1, to: 2}, ...]
//	    entry: 1
//	}
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/flowset/flowset/internal/graph"
)

// CompileGraph parses a CUE value holding a `graph` struct into a
// graph.Definition. Uses the CUE SDK's Go API directly.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`graph: { ... }`)
//	def, err := compiler.CompileGraph(v)
func CompileGraph(v cue.Value) (*graph.Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	graphVal := v.LookupPath(cue.ParsePath("graph"))
	if !graphVal.Exists() {
		return nil, &CompileError{
			Field:   "graph",
			Message: "graph struct is required",
			Pos:     v.Pos(),
		}
	}

	def := &graph.Definition{}

	nodes, err := parseNodes(graphVal)
	if err != nil {
		return nil, err
	}
	def.Nodes = nodes

	edges, err := parseEdges(graphVal)
	if err != nil {
		return nil, err
	}
	def.Edges = edges

	entryVal := graphVal.LookupPath(cue.ParsePath("entry"))
	if !entryVal.Exists() {
		return nil, &CompileError{
			Field:   "graph.entry",
			Message: "entry is required",
			Pos:     graphVal.Pos(),
		}
	}
	entry, err := intField(entryVal, "graph.entry")
	if err != nil {
		return nil, err
	}
	def.Entry = entry

	return def, nil
}

// parseNodes extracts the node list. At least one node is required.
func parseNodes(v cue.Value) ([]graph.Node, error) {
	nodesVal := v.LookupPath(cue.ParsePath("nodes"))
	if !nodesVal.Exists() {
		return nil, &CompileError{
			Field:   "graph.nodes",
			Message: "nodes list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := nodesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var nodes []graph.Node
	for i := 0; iter.Next(); i++ {
		field := fmt.Sprintf("graph.nodes[%d]", i)
		nv := iter.Value()

		id, err := requiredInt(nv, field, "id")
		if err != nil {
			return nil, err
		}
		unload, err := requiredInt(nv, field, "unload")
		if err != nil {
			return nil, err
		}
		load, err := requiredInt(nv, field, "load")
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, graph.Node{ID: id, Unload: unload, Load: load})
	}

	if len(nodes) == 0 {
		return nil, &CompileError{
			Field:   "graph.nodes",
			Message: "at least one node is required",
			Pos:     nodesVal.Pos(),
		}
	}
	return nodes, nil
}

// parseEdges extracts the edge list. An absent or empty list is legal.
func parseEdges(v cue.Value) ([]graph.Edge, error) {
	edgesVal := v.LookupPath(cue.ParsePath("edges"))
	if !edgesVal.Exists() {
		return nil, nil
	}

	iter, err := edgesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var edges []graph.Edge
	for i := 0; iter.Next(); i++ {
		field := fmt.Sprintf("graph.edges[%d]", i)
		ev := iter.Value()

		from, err := requiredInt(ev, field, "from")
		if err != nil {
			return nil, err
		}
		to, err := requiredInt(ev, field, "to")
		if err != nil {
			return nil, err
		}
		edges = append(edges, graph.Edge{From: from, To: to})
	}
	return edges, nil
}

// requiredInt reads an integer member of a struct value.
func requiredInt(v cue.Value, field, name string) (int, error) {
	member := v.LookupPath(cue.ParsePath(name))
	if !member.Exists() {
		return 0, &CompileError{
			Field:   field + "." + name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	return intField(member, field+"."+name)
}

// intField converts a CUE value to an int.
func intField(v cue.Value, field string) (int, error) {
	n, err := v.Int64()
	if err != nil {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be an integer: %v", err),
			Pos:     v.Pos(),
		}
	}
	return int(n), nil
}
