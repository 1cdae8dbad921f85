package algorithms

import (
	"container/heap"
	"sort"
)

// RankedNode represents an author with its score
type RankedNode struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	order int
}

// rankedNodeHeap is a min-heap on score; among equal scores the author
// that comes later in the ordering sits lower so it is evicted first.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].order > h[j].order
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopN returns at most n authors by descending score. order fixes the
// tie-break: among equal scores the author listed first in order wins.
// Names in scores missing from order are ignored.
func TopN(scores map[string]float64, order []string, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for i, name := range order {
		score, ok := scores[name]
		if !ok {
			continue
		}
		rn := RankedNode{Name: name, Score: score, order: i}

		if h.Len() < n {
			heap.Push(&h, rn)
		} else if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].order < result[j].order
	})

	return result
}
