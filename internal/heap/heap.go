// Package heap provides a bounded max-heap for tracking the k best
// (lowest-cost) matches during sliding search.
package heap

import "math"

// MaxHeap keeps the k lowest costs seen so far. The worst retained cost is
// always at the root (index 0), so a candidate is admitted only when it
// beats the current worst.
type MaxHeap struct {
	Offsets []int
	Costs   []float64
	Size    int
	K       int
}

// New creates a max-heap with capacity k, filled with +Inf sentinels so the
// first k finite candidates are always admitted.
func New(k int) *MaxHeap {
	h := &MaxHeap{
		Offsets: make([]int, k),
		Costs:   make([]float64, k),
		Size:    0,
		K:       k,
	}
	for i := 0; i < k; i++ {
		h.Offsets[i] = -1
		h.Costs[i] = math.Inf(1)
	}
	return h
}

// MaxCost returns the worst retained cost (the root), +Inf while the heap
// still has free capacity. Usable directly as a pruning threshold.
func (h *MaxHeap) MaxCost() float64 {
	return h.Costs[0]
}

// Push attempts to admit a match. Returns true if it displaced the current
// worst entry.
func (h *MaxHeap) Push(offset int, cost float64) bool {
	if cost >= h.Costs[0] {
		return false
	}

	h.Costs[0] = cost
	h.Offsets[0] = offset
	h.siftDown(0)

	if h.Size < h.K {
		h.Size++
	}
	return true
}

// siftDown restores the heap property after replacing the root.
func (h *MaxHeap) siftDown(i int) {
	for {
		left := 2*i + 1
		right := 2*i + 2

		if left >= h.K {
			break
		}

		swap := i
		if h.Costs[left] > h.Costs[swap] {
			swap = left
		}
		if right < h.K && h.Costs[right] > h.Costs[swap] {
			swap = right
		}

		if swap == i {
			break
		}

		h.Costs[i], h.Costs[swap] = h.Costs[swap], h.Costs[i]
		h.Offsets[i], h.Offsets[swap] = h.Offsets[swap], h.Offsets[i]
		i = swap
	}
}

// Sort converts the heap arrays to ascending cost order in place. The heap
// property no longer holds afterwards; unfilled sentinel slots end up at the
// tail.
func (h *MaxHeap) Sort() {
	for i := h.K - 1; i > 0; i-- {
		h.Costs[0], h.Costs[i] = h.Costs[i], h.Costs[0]
		h.Offsets[0], h.Offsets[i] = h.Offsets[i], h.Offsets[0]
		h.siftDownN(0, i)
	}
}

// siftDownN is siftDown limited to the first n elements.
func (h *MaxHeap) siftDownN(i, n int) {
	for {
		left := 2*i + 1
		right := 2*i + 2

		if left >= n {
			break
		}

		swap := i
		if h.Costs[left] > h.Costs[swap] {
			swap = left
		}
		if right < n && h.Costs[right] > h.Costs[swap] {
			swap = right
		}

		if swap == i {
			break
		}

		h.Costs[i], h.Costs[swap] = h.Costs[swap], h.Costs[i]
		h.Offsets[i], h.Offsets[swap] = h.Offsets[swap], h.Offsets[i]
		i = swap
	}
}
