package flow

import "math/bits"

const wordBits = 64

// Set is a fixed-width bit-vector subset of a flow-value universe.
// Bit i corresponds to the universe value at dense index i.
//
// Sets are not safe for concurrent mutation; the engine mutates them
// from a single goroutine only.
type Set struct {
	words []uint64
	width int
}

// NewSet returns an empty set of the given bit width.
func NewSet(width int) *Set {
	return &Set{
		words: make([]uint64, (width+wordBits-1)/wordBits),
		width: width,
	}
}

// Width returns the fixed bit width of the set.
func (s *Set) Width() int {
	return s.width
}

// Add sets the bit at index i.
func (s *Set) Add(i int) {
	s.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// Remove clears the bit at index i.
func (s *Set) Remove(i int) {
	s.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// Has reports whether the bit at index i is set.
func (s *Set) Has(i int) bool {
	return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// UnionWith folds other into s and reports whether s grew. The join of
// the analysis lattice; inside the engine this is the only mutation
// applied to a stored InputSet, so stored sets never shrink.
func (s *Set) UnionWith(other *Set) bool {
	grew := false
	for i, w := range other.words {
		old := s.words[i]
		merged := old | w
		if merged != old {
			s.words[i] = merged
			grew = true
		}
	}
	return grew
}

// Equal reports whether two sets hold exactly the same bits.
func (s *Set) Equal(other *Set) bool {
	if s.width != other.width {
		return false
	}
	for i, w := range s.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := &Set{
		words: make([]uint64, len(s.words)),
		width: s.width,
	}
	copy(c.words, s.words)
	return c
}

// Len returns the number of set bits.
func (s *Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Bits returns the set bit indices in ascending order. The result is
// never nil, so callers can serialize it as an empty list.
func (s *Set) Bits() []int {
	out := make([]int, 0, s.Len())
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+b)
			w &= w - 1
		}
	}
	return out
}
