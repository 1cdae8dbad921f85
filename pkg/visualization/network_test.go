package visualization

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// hubGraph has one author with twelve co-authors, two of whom also
// collaborate with a second group
func hubGraph() *coauthor.Graph {
	g := coauthor.New()
	for i := 0; i < 12; i++ {
		g.AddArticle([]string{"Hub", fmt.Sprintf("Leaf%02d", i)})
	}
	g.AddArticle([]string{"Leaf05", "Other1", "Other2"})
	g.AddArticle([]string{"Leaf07", "Other1"})
	return g
}

func TestNodeSize(t *testing.T) {
	tests := []struct {
		degree int
		want   float64
	}{
		{1, 10},
		{10, 100},
		{11, 550},
		{20, 1000},
	}
	for _, tt := range tests {
		if got := NodeSize(tt.degree, 10); got != tt.want {
			t.Errorf("NodeSize(%d) = %f, want %f", tt.degree, got, tt.want)
		}
	}
}

func TestIsImportant(t *testing.T) {
	config := DefaultViewConfig()
	tests := []struct {
		name        string
		degree      int
		betweenness float64
		want        bool
	}{
		{"hub", 11, 0, true},
		{"broker", 2, 0.06, true},
		{"both", 15, 0.5, true},
		{"at thresholds", 10, 0.05, false},
		{"ordinary", 3, 0.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImportant(tt.degree, tt.betweenness, config); got != tt.want {
				t.Errorf("IsImportant(%d, %f) = %v, want %v", tt.degree, tt.betweenness, got, tt.want)
			}
		})
	}
}

func TestCommunityColorWraps(t *testing.T) {
	if CommunityColor(0) != CommunityColor(len(Palette)) {
		t.Error("Expected community ids to alias past the palette size")
	}
	if CommunityColor(-1) != Gray {
		t.Error("Expected unknown community to be gray")
	}
}

func TestTopNeighbors(t *testing.T) {
	g := hubGraph()
	degree := algorithms.DegreeCentrality(g)

	got := TopNeighbors(g, degree, "Hub", 3)
	// Leaf05 and Leaf07 have extra collaborators; the rest tie at 1
	want := []string{"Leaf05", "Leaf07", "Leaf00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopNeighbors() = %v, want %v", got, want)
	}

	if got := TopNeighbors(g, degree, "Other2", 3); !reflect.DeepEqual(got, []string{"Leaf05", "Other1"}) {
		t.Errorf("TopNeighbors(Other2) = %v", got)
	}
}

func TestBuildNetworkView(t *testing.T) {
	g := hubGraph()
	centrality := algorithms.ComputeAllCentrality(g, 5)
	partition := algorithms.GreedyModularity(g)
	positions := NewForceDirectedLayout(&LayoutConfig{Seed: 42}).ComputeLayout(g)

	view := BuildNetworkView(g, centrality, partition, positions, DefaultViewConfig())

	if len(view.Nodes) != g.NodeCount() {
		t.Fatalf("Expected every node drawn, got %d", len(view.Nodes))
	}

	important := map[string]bool{}
	for _, node := range view.Nodes {
		if node.Size != NodeSize(node.Degree, 10) {
			t.Errorf("%s size %f does not follow degree %d", node.Name, node.Size, node.Degree)
		}
		if node.Color != CommunityColor(partition.Of(node.Name)) {
			t.Errorf("%s color does not follow its community", node.Name)
		}
		if node.Important != IsImportant(node.Degree, centrality.Betweenness[node.Name], DefaultViewConfig()) {
			t.Errorf("%s importance mismatch", node.Name)
		}
		if node.Important {
			important[node.Name] = true
		}
	}

	if !important["Hub"] {
		t.Fatal("Expected Hub to be important")
	}
	for _, name := range view.Labels {
		if !important[name] {
			t.Errorf("Label %s is not an important node", name)
		}
	}
	if len(view.Labels) != len(important) {
		t.Errorf("Expected %d labels, got %d", len(important), len(view.Labels))
	}

	perSource := map[string]int{}
	for _, edge := range view.Edges {
		if !important[edge.From] {
			t.Errorf("Edge %s-%s does not start at an important node", edge.From, edge.To)
		}
		if !g.HasEdge(edge.From, edge.To) {
			t.Errorf("Edge %s-%s is not a collaboration", edge.From, edge.To)
		}
		if edge.Color != EdgeColor(partition, edge.From, edge.To) {
			t.Errorf("Edge %s-%s has wrong color", edge.From, edge.To)
		}
		perSource[edge.From]++
	}
	for name, count := range perSource {
		if count > 3 {
			t.Errorf("%s has %d drawn edges, want at most 3", name, count)
		}
	}
	if len(view.Edges) >= g.EdgeCount() {
		t.Errorf("Expected the edge set to be filtered, drew %d of %d", len(view.Edges), g.EdgeCount())
	}
}

func TestEdgeColor(t *testing.T) {
	p := &algorithms.Partition{NodeCommunity: map[string]int{"a": 2, "b": 2, "c": 0}}
	if EdgeColor(p, "a", "b") != Palette[2] {
		t.Error("Expected same-community edge to use the community color")
	}
	if EdgeColor(p, "a", "c") != Gray {
		t.Error("Expected cross-community edge to be gray")
	}
}

func TestRenderCharts(t *testing.T) {
	dir := t.TempDir()
	g := hubGraph()
	centrality := algorithms.ComputeAllCentrality(g, 5)
	partition := algorithms.GreedyModularity(g)
	positions := NewForceDirectedLayout(&LayoutConfig{Seed: 42}).ComputeLayout(g)
	view := BuildNetworkView(g, centrality, partition, positions, DefaultViewConfig())

	chart := func(name string) ChartConfig {
		return ChartConfig{
			Path:   filepath.Join(dir, name),
			Title:  name,
			Width:  4 * vg.Inch,
			Height: 3 * vg.Inch,
		}
	}

	tests := []struct {
		file   string
		render func(ChartConfig) error
	}{
		{"network.png", func(c ChartConfig) error { return RenderNetwork(view, c) }},
		{"network.svg", func(c ChartConfig) error { return RenderNetwork(view, c) }},
		{"empty_network.png", func(c ChartConfig) error { return RenderNetwork(&NetworkView{}, c) }},
		{"years.png", func(c ChartConfig) error {
			return RenderBarChart([]Bar{{"2019", 3}, {"2020", 5}}, false, c)
		}},
		{"cited.pdf", func(c ChartConfig) error {
			return RenderBarChart([]Bar{{"X", 10}, {"Y", 5}}, true, c)
		}},
		{"empty_bars.png", func(c ChartConfig) error { return RenderBarChart(nil, false, c) }},
		{"hist.png", func(c ChartConfig) error {
			return RenderHistogram([]HistogramBin{{0, 1, 2}, {1, 2, 0}, {2, 3, 4}}, c)
		}},
		{"empty_hist.png", func(c ChartConfig) error { return RenderHistogram(nil, c) }},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			config := chart(tt.file)
			if err := tt.render(config); err != nil {
				t.Fatalf("render failed: %v", err)
			}
			info, err := os.Stat(config.Path)
			if err != nil {
				t.Fatalf("output missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output is empty")
			}
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	config := ChartConfig{Path: filepath.Join(t.TempDir(), "chart.bogus"), Width: vg.Inch, Height: vg.Inch}
	if err := RenderBarChart([]Bar{{"a", 1}}, false, config); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"a longer title", 6, "a lon…"},
		{"größer", 4, "grö…"},
		{"any", 0, "any"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
