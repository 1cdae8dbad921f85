package algorithms

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// TestCountTriangles_TwoTriangles tests counting on two bridged cliques
func TestCountTriangles_TwoTriangles(t *testing.T) {
	g := twoTriangles(t)

	result := CountTriangles(g, 3)

	if result.GlobalCount != 2 {
		t.Errorf("Expected 2 triangles, got %d", result.GlobalCount)
	}
	if result.PerNode["3"] != 1 || result.PerNode["1"] != 1 {
		t.Errorf("Unexpected per-node counts %v", result.PerNode)
	}
	// node 3 has neighbors 1, 2, 4: one closed pair of three
	if math.Abs(result.ClusteringCoefficients["3"]-1.0/3.0) > 1e-9 {
		t.Errorf("Expected clustering 1/3 for node 3, got %f", result.ClusteringCoefficients["3"])
	}
	if result.ClusteringCoefficients["1"] != 1 {
		t.Errorf("Expected clustering 1 for node 1, got %f", result.ClusteringCoefficients["1"])
	}
	wantAvg := (4*1.0 + 2*(1.0/3.0)) / 6
	if math.Abs(result.AverageClustering-wantAvg) > 1e-9 {
		t.Errorf("Expected average clustering %f, got %f", wantAvg, result.AverageClustering)
	}
	if len(result.TopNodes) != 3 || result.TopNodes[0].Name != "1" {
		t.Errorf("Unexpected top nodes %+v", result.TopNodes)
	}
}

// TestCountTriangles_EmptyGraph tests counting on empty graph
func TestCountTriangles_EmptyGraph(t *testing.T) {
	result := CountTriangles(coauthor.New(), 5)
	if result.GlobalCount != 0 || result.AverageClustering != 0 || len(result.TopNodes) != 0 {
		t.Errorf("Expected zero result, got %+v", result)
	}
}

// TestTopN tests ordering, ties and truncation
func TestTopN(t *testing.T) {
	scores := map[string]float64{"a": 0.5, "b": 0.9, "c": 0.5, "d": 0.1, "e": 0.5}
	order := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"top one", 1, []string{"b"}},
		{"ties keep order", 3, []string{"b", "a", "c"}},
		{"cut inside tie", 2, []string{"b", "a"}},
		{"more than available", 10, []string{"b", "a", "c", "e", "d"}},
		{"zero", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(scores, order, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("TopN(%d) returned %d nodes", tt.n, len(got))
			}
			for i, rn := range got {
				if rn.Name != tt.want[i] {
					t.Errorf("position %d = %s, want %s", i, rn.Name, tt.want[i])
				}
				if i > 0 && rn.Score > got[i-1].Score {
					t.Errorf("not descending at %d", i)
				}
			}
		})
	}
}

// TestTopN_IgnoresUnordered tests that only names in order are ranked
func TestTopN_IgnoresUnordered(t *testing.T) {
	got := TopN(map[string]float64{"ghost": 1, "a": 0.2}, []string{"a"}, 5)
	if len(got) != 1 || got[0].Name != "a" {
		t.Errorf("TopN() = %+v", got)
	}
}
