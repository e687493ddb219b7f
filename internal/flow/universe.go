// Package flow provides the flow-value universe and the bit-vector sets
// the fixpoint engine iterates over.
//
// The universe is the deduplicated set of every unload and load value
// declared by a graph's nodes, in ascending order. Sorting fixes the
// value-to-bit assignment, so two analyses of the same graph always agree
// on bit positions and result sets come out in ascending value order.
package flow

import "sort"

// Universe is a bijection between flow-value identifiers and a dense
// 0-based index range. Immutable after construction.
type Universe struct {
	values []int       // ascending, deduplicated
	index  map[int]int // value -> dense index
}

// NewUniverse builds a universe from the given values. Duplicates are
// collapsed; order of the input is irrelevant.
func NewUniverse(values []int) *Universe {
	index := make(map[int]int, len(values))
	dedup := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := index[v]; ok {
			continue
		}
		index[v] = 0 // placeholder until sorted
		dedup = append(dedup, v)
	}
	sort.Ints(dedup)
	for i, v := range dedup {
		index[v] = i
	}
	return &Universe{values: dedup, index: index}
}

// Width returns the number of distinct flow values, which is also the
// bit width of every Set drawn from this universe.
func (u *Universe) Width() int {
	return len(u.values)
}

// Index returns the dense index of a flow value. The second return is
// false for values outside the universe; for any unload/load value of
// the graph the universe was derived from, the lookup always succeeds.
func (u *Universe) Index(value int) (int, bool) {
	i, ok := u.index[value]
	return i, ok
}

// Value returns the flow value at the given dense index.
func (u *Universe) Value(index int) int {
	return u.values[index]
}

// Values returns all flow values in ascending order.
func (u *Universe) Values() []int {
	out := make([]int, len(u.values))
	copy(out, u.values)
	return out
}

// Decode translates a Set back to the original flow-value identifiers
// whose bit is set, in ascending order. The result is never nil.
func (u *Universe) Decode(s *Set) []int {
	out := make([]int, 0, s.Len())
	for _, i := range s.Bits() {
		out = append(out, u.values[i])
	}
	return out
}

// NewSet returns an empty set sized to this universe.
func (u *Universe) NewSet() *Set {
	return NewSet(len(u.values))
}
