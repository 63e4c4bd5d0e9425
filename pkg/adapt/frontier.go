package adapt

import "github.com/normanking/synapse/pkg/capability"

// frontierEntry is one candidate object on the search frontier, together
// with the cumulative weight of the path that produced it and the link back
// to the entry it was adapted from.
type frontierEntry struct {
	hops     int // adapter applications along the path
	distance int // cumulative specificity distance along the path
	seq      int // insertion sequence, breaks remaining ties FIFO

	obj capability.Typed

	// Path reconstruction. Nil parent marks the original object.
	parent  *frontierEntry
	via     *Offer
	viaDist int
}

// frontier is a min-heap ordered lexicographically by (hops, distance, seq).
// The sequence number is assigned at push time and strictly increases, so
// equal-weight entries pop in insertion order. That FIFO guarantee is a
// correctness requirement for deterministic resolution, not an optimization.
type frontier []*frontierEntry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].hops != f[j].hops {
		return f[i].hops < f[j].hops
	}
	if f[i].distance != f[j].distance {
		return f[i].distance < f[j].distance
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*frontierEntry))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return entry
}
