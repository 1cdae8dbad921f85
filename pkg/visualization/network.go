package visualization

import (
	"image/color"
	"sort"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// ViewConfig holds the thresholds that decide what the network plot shows
type ViewConfig struct {
	HubDegree            int     // Degree above which a node is a hub
	BetweennessThreshold float64 // Betweenness above which a node is a broker
	TopNeighbors         int     // Edges drawn per important node
}

// DefaultViewConfig returns the standard thresholds
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		HubDegree:            10,
		BetweennessThreshold: 0.05,
		TopNeighbors:         3,
	}
}

// NodeStyle is one drawn author
type NodeStyle struct {
	Name      string
	Position  Position
	Degree    int
	Size      float64
	Community int
	Color     color.RGBA
	Important bool
}

// EdgeStyle is one drawn collaboration
type EdgeStyle struct {
	From  string
	To    string
	Color color.RGBA
}

// NetworkView is the filtered, styled network ready to draw
type NetworkView struct {
	Nodes  []NodeStyle
	Edges  []EdgeStyle
	Labels []string // names of important nodes, in node order
}

// NodeSize maps a degree to a marker area: hubs are scaled five times
// harder than everyone else so they stand out.
func NodeSize(degree, hubDegree int) float64 {
	if degree > hubDegree {
		return 50 * float64(degree)
	}
	return 10 * float64(degree)
}

// IsImportant reports whether an author is a hub or a broker
func IsImportant(degree int, betweenness float64, config ViewConfig) bool {
	return degree > config.HubDegree || betweenness > config.BetweennessThreshold
}

// TopNeighbors returns up to n co-authors of name ordered by descending
// degree; equal degrees keep neighbor insertion order.
func TopNeighbors(g *coauthor.Graph, degree map[string]int, name string, n int) []string {
	neighbors := g.Neighbors(name)
	sort.SliceStable(neighbors, func(i, j int) bool {
		return degree[neighbors[i]] > degree[neighbors[j]]
	})
	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors
}

// BuildNetworkView styles every node and selects the edges to draw. Only
// edges from an important node to one of its top neighbors are kept.
func BuildNetworkView(g *coauthor.Graph, centrality *algorithms.CentralityResult, partition *algorithms.Partition, positions map[string]Position, config ViewConfig) *NetworkView {
	names := g.Nodes()
	view := &NetworkView{
		Nodes: make([]NodeStyle, 0, len(names)),
	}

	seen := make(map[coauthor.Edge]bool)
	for _, name := range names {
		degree := centrality.Degree[name]
		community := partition.Of(name)
		important := IsImportant(degree, centrality.Betweenness[name], config)

		view.Nodes = append(view.Nodes, NodeStyle{
			Name:      name,
			Position:  positions[name],
			Degree:    degree,
			Size:      NodeSize(degree, config.HubDegree),
			Community: community,
			Color:     CommunityColor(community),
			Important: important,
		})

		if !important {
			continue
		}
		view.Labels = append(view.Labels, name)

		for _, neighbor := range TopNeighbors(g, centrality.Degree, name, config.TopNeighbors) {
			key := coauthor.Edge{A: name, B: neighbor}
			if name > neighbor {
				key = coauthor.Edge{A: neighbor, B: name}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			view.Edges = append(view.Edges, EdgeStyle{
				From:  name,
				To:    neighbor,
				Color: EdgeColor(partition, name, neighbor),
			})
		}
	}

	return view
}

// EdgeColor is the shared community color, or Gray across communities
func EdgeColor(partition *algorithms.Partition, a, b string) color.RGBA {
	ca, cb := partition.Of(a), partition.Of(b)
	if ca == cb && ca >= 0 {
		return CommunityColor(ca)
	}
	return Gray
}
