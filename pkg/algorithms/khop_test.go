package algorithms

import (
	"reflect"
	"testing"
)

func TestKHopNeighbours(t *testing.T) {
	// A-B, A-C, B-D, C-D, D-E
	g := buildGraph(t,
		[]string{"A", "B"},
		[]string{"A", "C"},
		[]string{"B", "D"},
		[]string{"C", "D"},
		[]string{"D", "E"},
	)

	tests := []struct {
		name      string
		opts      KHopOptions
		wantByHop map[int][]string
		wantOrder []string
	}{
		{
			name:      "one hop",
			opts:      KHopOptions{MaxHops: 1},
			wantByHop: map[int][]string{1: {"B", "C"}},
			wantOrder: []string{"B", "C"},
		},
		{
			name:      "default two hops",
			opts:      DefaultKHopOptions(),
			wantByHop: map[int][]string{1: {"B", "C"}, 2: {"D"}},
			wantOrder: []string{"B", "C", "D"},
		},
		{
			name:      "whole component",
			opts:      KHopOptions{MaxHops: 10},
			wantByHop: map[int][]string{1: {"B", "C"}, 2: {"D"}, 3: {"E"}},
			wantOrder: []string{"B", "C", "D", "E"},
		},
		{
			name:      "max results keeps closest",
			opts:      KHopOptions{MaxHops: 10, MaxResults: 2},
			wantByHop: map[int][]string{1: {"B", "C"}},
			wantOrder: []string{"B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := KHopNeighbours(g, "A", tt.opts)
			if err != nil {
				t.Fatalf("KHopNeighbours: %v", err)
			}
			if !reflect.DeepEqual(res.ByHop, tt.wantByHop) {
				t.Errorf("ByHop = %v, want %v", res.ByHop, tt.wantByHop)
			}
			if !reflect.DeepEqual(res.Order, tt.wantOrder) {
				t.Errorf("Order = %v, want %v", res.Order, tt.wantOrder)
			}
			if res.TotalReachable != len(tt.wantOrder) {
				t.Errorf("TotalReachable = %d, want %d", res.TotalReachable, len(tt.wantOrder))
			}
			if _, ok := res.Distances["A"]; ok {
				t.Error("source must not be in its own neighbourhood")
			}
		})
	}
}

func TestKHopNeighboursRejectsZeroHops(t *testing.T) {
	g := buildGraph(t, chain("A", "B")...)
	if _, err := KHopNeighbours(g, "A", KHopOptions{}); err == nil {
		t.Error("expected an error for MaxHops 0")
	}
}
