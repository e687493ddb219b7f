package graph

// UnrankedNode marks a node with no path from the entry. Such nodes are
// never scheduled by the engine and keep an empty input set.
const UnrankedNode = -1

// ReversePostorder returns rank[i] = reverse-postorder position of the
// node with dense index i, or UnrankedNode if i is unreachable from the
// entry.
//
// The traversal is an iterative depth-first search from the entry,
// exploring successors in stored order. A node is appended to the
// postorder once all its outgoing edges have been explored; edges into
// already-visited nodes (back edges, self-loops) are not re-explored.
// The explicit frame stack keeps long chains from exhausting the
// goroutine stack.
func (g *Graph) ReversePostorder() []int {
	type frame struct {
		node int
		next int // index into succs[node] of the next edge to explore
	}

	visited := make([]bool, len(g.nodes))
	post := make([]int, 0, len(g.nodes))
	stack := []frame{{node: g.entry}}
	visited[g.entry] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := g.succs[top.node]

		advanced := false
		for top.next < len(succs) {
			s := succs[top.next]
			top.next++
			if !visited[s] {
				visited[s] = true
				stack = append(stack, frame{node: s})
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}

		post = append(post, top.node)
		stack = stack[:len(stack)-1]
	}

	rank := make([]int, len(g.nodes))
	for i := range rank {
		rank[i] = UnrankedNode
	}
	for i, n := range post {
		rank[n] = len(post) - 1 - i
	}
	return rank
}
