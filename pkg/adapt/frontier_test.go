package adapt

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontier_PopOrder(t *testing.T) {
	f := &frontier{}
	heap.Init(f)

	// Pushed out of order on purpose.
	heap.Push(f, &frontierEntry{hops: 2, distance: 0, seq: 1})
	heap.Push(f, &frontierEntry{hops: 1, distance: 5, seq: 2})
	heap.Push(f, &frontierEntry{hops: 1, distance: 0, seq: 3})
	heap.Push(f, &frontierEntry{hops: 1, distance: 0, seq: 4})

	var seqs []int
	for f.Len() > 0 {
		entry := heap.Pop(f).(*frontierEntry)
		seqs = append(seqs, entry.seq)
	}

	// Hops dominate, then distance, then FIFO by sequence.
	assert.Equal(t, []int{3, 4, 2, 1}, seqs)
}

func TestFrontier_FIFOAmongEqualWeights(t *testing.T) {
	f := &frontier{}
	heap.Init(f)

	for seq := 1; seq <= 5; seq++ {
		heap.Push(f, &frontierEntry{hops: 1, distance: 1, seq: seq})
	}

	for want := 1; want <= 5; want++ {
		entry := heap.Pop(f).(*frontierEntry)
		assert.Equal(t, want, entry.seq)
	}
}
