package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphAuthors = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_graph_authors",
			Help: "Number of authors (nodes) in the co-authorship graph",
		},
	)

	r.GraphCollaborations = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_graph_collaborations",
			Help: "Number of distinct co-author pairs (edges)",
		},
	)

	r.GraphCommunities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_graph_communities",
			Help: "Number of communities found by greedy modularity",
		},
	)

	r.GraphModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_graph_modularity",
			Help: "Modularity of the community partition",
		},
	)

	r.GraphComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_graph_components",
			Help: "Number of connected components",
		},
	)

	r.GraphTriangles = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_graph_triangles",
			Help: "Number of closed author triples",
		},
	)
}
