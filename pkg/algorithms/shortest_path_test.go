package algorithms

import (
	"errors"
	"reflect"
	"testing"
)

func TestCollaborationPath(t *testing.T) {
	// A-B-C-D plus a shortcut A-E-D and an island X-Y
	g := buildGraph(t, append(chain("A", "B", "C", "D"), chain("A", "E", "D")...)...)
	g.AddArticle([]string{"X", "Y"})

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"same author", "A", "A", []string{"A"}},
		{"adjacent", "A", "B", []string{"A", "B"}},
		{"shortcut wins", "A", "D", []string{"A", "E", "D"}},
		{"reverse", "D", "A", []string{"D", "E", "A"}},
		{"two hops", "B", "D", []string{"B", "C", "D"}},
		{"different components", "A", "X", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CollaborationPath(g, tt.from, tt.to)
			if err != nil {
				t.Fatalf("CollaborationPath: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("path %s→%s = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCollaborationPathLengthMatchesDistances(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B", "C"},
		[]string{"C", "D"},
		[]string{"D", "E", "F"},
		[]string{"F", "G"},
		[]string{"B", "H"},
		[]string{"H", "G"},
	)

	for _, from := range g.Nodes() {
		dist, err := CollaborationDistances(g, from)
		if err != nil {
			t.Fatalf("CollaborationDistances: %v", err)
		}
		for _, to := range g.Nodes() {
			path, err := CollaborationPath(g, from, to)
			if err != nil {
				t.Fatalf("CollaborationPath: %v", err)
			}
			if len(path)-1 != dist[to] {
				t.Errorf("%s→%s: path %v has %d hops, distance is %d", from, to, path, len(path)-1, dist[to])
			}
			for i := 0; i+1 < len(path); i++ {
				if !g.HasEdge(path[i], path[i+1]) {
					t.Errorf("%s→%s: %s and %s never co-authored", from, to, path[i], path[i+1])
				}
			}
		}
	}
}

func TestCollaborationDistances(t *testing.T) {
	g := buildGraph(t, chain("A", "B", "C")...)
	g.AddArticle([]string{"X", "Y"})

	dist, err := CollaborationDistances(g, "A")
	if err != nil {
		t.Fatalf("CollaborationDistances: %v", err)
	}
	want := map[string]int{"A": 0, "B": 1, "C": 2}
	if !reflect.DeepEqual(dist, want) {
		t.Errorf("distances = %v, want %v", dist, want)
	}
}

func TestUnknownAuthor(t *testing.T) {
	g := buildGraph(t, chain("A", "B")...)

	if _, err := CollaborationPath(g, "A", "Nobody"); !errors.Is(err, ErrUnknownAuthor) {
		t.Errorf("CollaborationPath error = %v, want ErrUnknownAuthor", err)
	}
	if _, err := CollaborationDistances(g, "Nobody"); !errors.Is(err, ErrUnknownAuthor) {
		t.Errorf("CollaborationDistances error = %v, want ErrUnknownAuthor", err)
	}
	if _, err := KHopNeighbours(g, "Nobody", DefaultKHopOptions()); !errors.Is(err, ErrUnknownAuthor) {
		t.Errorf("KHopNeighbours error = %v, want ErrUnknownAuthor", err)
	}
	if _, err := PredictLinksFor(g, "Nobody", DefaultLinkPredictionOptions()); !errors.Is(err, ErrUnknownAuthor) {
		t.Errorf("PredictLinksFor error = %v, want ErrUnknownAuthor", err)
	}
}
