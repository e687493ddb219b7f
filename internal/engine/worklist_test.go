package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowset/flowset/internal/graph"
)

func TestWorklist_PushDeduplicates(t *testing.T) {
	wl := newWorklist(PolicyFIFO, []int{0, 1, 2}, 3)

	assert.True(t, wl.Push(1))
	assert.False(t, wl.Push(1), "second push of a queued node is a no-op")
	assert.Equal(t, 1, wl.Len())
}

func TestWorklist_RepushAfterPop(t *testing.T) {
	wl := newWorklist(PolicyFIFO, []int{0, 1}, 2)

	require.True(t, wl.Push(0))
	node, ok := wl.Pop()
	require.True(t, ok)
	assert.Equal(t, 0, node)

	assert.True(t, wl.Push(0), "a popped node may be queued again")
}

func TestWorklist_RPOOrder(t *testing.T) {
	// Node 2 has the lowest rank and must come out first regardless of
	// push order.
	wl := newWorklist(PolicyRPO, []int{2, 1, 0}, 3)
	wl.Push(0)
	wl.Push(1)
	wl.Push(2)

	var got []int
	for wl.Len() > 0 {
		n, ok := wl.Pop()
		require.True(t, ok)
		got = append(got, n)
	}
	assert.Equal(t, []int{2, 1, 0}, got)
}

func TestWorklist_FIFOOrder(t *testing.T) {
	wl := newWorklist(PolicyFIFO, []int{2, 1, 0}, 3)
	wl.Push(0)
	wl.Push(1)
	wl.Push(2)

	var got []int
	for wl.Len() > 0 {
		n, _ := wl.Pop()
		got = append(got, n)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestWorklist_UnrankedSortsLast(t *testing.T) {
	wl := newWorklist(PolicyRPO, []int{graph.UnrankedNode, 0}, 2)
	wl.Push(0)
	wl.Push(1)

	n, _ := wl.Pop()
	assert.Equal(t, 1, n, "ranked node wins over unranked")
}

func TestWorklist_PopEmpty(t *testing.T) {
	wl := newWorklist(PolicyRPO, nil, 0)

	_, ok := wl.Pop()
	assert.False(t, ok)
}

func TestRecorder_AssignsSequentialSeqs(t *testing.T) {
	rec := NewRecorder()
	rec.record(PassEvent{Node: 1, Input: []int{}, Output: []int{1}})
	rec.record(PassEvent{Node: 2, Input: []int{1}, Output: []int{1, 2}})

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].Seq)
	assert.Equal(t, int64(2), events[1].Seq)
}

func TestRecorder_EventsReturnsCopy(t *testing.T) {
	rec := NewRecorder()
	rec.record(PassEvent{Node: 1, Input: []int{}, Output: []int{}})

	events := rec.Events()
	events[0].Node = 99

	assert.Equal(t, 1, rec.Events()[0].Node)
}

func TestFixedGenerator_ReturnsTokensInOrder(t *testing.T) {
	gen := NewFixedGenerator("a", "b")

	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator_GeneratesUniqueTokens(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.Generate()
	b := gen.Generate()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
