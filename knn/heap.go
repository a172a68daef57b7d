package knn

import "container/heap"

// Neighbor is a training vector selected for a query.
type Neighbor struct {
	Index    int // position in the training set
	Distance int // Hamming distance to the query
}

// worse reports whether a ranks after b: larger distance, then later index.
func worse(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Index > b.Index
}

// maxHeap keeps the current k best neighbors with the worst one on top.
type maxHeap []Neighbor

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(Neighbor)) }

func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// offer considers cand for a heap bounded at k entries.
// Candidates arrive in increasing index order, so one only displaces the
// current worst when its distance is strictly smaller.
func (h *maxHeap) offer(cand Neighbor, k int) {
	if h.Len() < k {
		heap.Push(h, cand)
		return
	}
	if cand.Distance < (*h)[0].Distance {
		(*h)[0] = cand
		heap.Fix(h, 0)
	}
}

// sorted drains the heap into ascending (distance, index) order.
func (h *maxHeap) sorted() []Neighbor {
	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Neighbor)
	}
	return out
}
