package report

import (
	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// Summary describes the dataset and its co-authorship graph
type Summary struct {
	Source            string  `json:"source"`
	Articles          int     `json:"articles"`
	InvalidValues     int     `json:"invalid_values"`
	Authors           int     `json:"authors"`
	Collaborations    int     `json:"collaborations"`
	Communities       int     `json:"communities"`
	Modularity        float64 `json:"modularity"`
	Components        int     `json:"components"`
	LargestComponent  int     `json:"largest_component"`
	Triangles         int     `json:"triangles"`
	AverageClustering float64 `json:"average_clustering"`
}

// Report aggregates every list printed or plotted by a run
type Report struct {
	Topic           string                  `json:"topic"`
	TopN            int                     `json:"top_n"`
	Summary         Summary                 `json:"summary"`
	Skipped         Skipped                 `json:"skipped"`
	ArticlesPerYear []YearCount             `json:"articles_per_year"`
	CitationDensity Histogram               `json:"citation_density"`
	TopAuthors      []AuthorCount           `json:"top_authors"`
	TopCited        []CitedPaper            `json:"top_cited"`
	TopBetweenness  []algorithms.RankedNode `json:"top_betweenness"`
	TopCloseness    []algorithms.RankedNode `json:"top_closeness"`
	TopDegree       []algorithms.RankedNode `json:"top_degree"`
}

// Input gathers the analysis results a report is built from
type Input struct {
	Topic      string
	Dataset    *bibliography.Dataset
	Graph      *coauthor.Graph
	Centrality *algorithms.CentralityResult
	Partition  *algorithms.Partition
	Components *algorithms.Partition
	Triangles  *algorithms.TriangleCountResult
	TopN       int
	Bins       int
}

// Build derives every summary list from in
func Build(in Input) *Report {
	articles := in.Dataset.Articles

	r := &Report{
		Topic: in.Topic,
		TopN:  in.TopN,
		Summary: Summary{
			Source:         in.Dataset.Source,
			Articles:       len(articles),
			InvalidValues:  len(in.Dataset.Invalid),
			Authors:        in.Graph.NodeCount(),
			Collaborations: in.Graph.EdgeCount(),
		},
		Skipped:         CountSkipped(articles),
		ArticlesPerYear: ArticlesPerYear(articles),
		CitationDensity: CitationDensity(articles, in.Bins),
		TopAuthors:      TopAuthorsByArticles(articles, in.TopN),
		TopCited:        TopCited(articles, in.TopN),
	}

	if in.Partition != nil {
		r.Summary.Communities = in.Partition.Count()
		r.Summary.Modularity = in.Partition.Modularity
	}
	if in.Components != nil {
		r.Summary.Components = in.Components.Count()
		if in.Components.Count() > 0 {
			r.Summary.LargestComponent = in.Components.Communities[0].Size
		}
	}
	if in.Triangles != nil {
		r.Summary.Triangles = in.Triangles.GlobalCount
		r.Summary.AverageClustering = in.Triangles.AverageClustering
	}
	if in.Centrality != nil {
		order := in.Graph.Nodes()
		r.TopBetweenness = algorithms.TopN(in.Centrality.Betweenness, order, in.TopN)
		r.TopCloseness = algorithms.TopN(in.Centrality.Closeness, order, in.TopN)
		degree := make(map[string]float64, len(in.Centrality.Degree))
		for name, d := range in.Centrality.Degree {
			degree[name] = float64(d)
		}
		r.TopDegree = algorithms.TopN(degree, order, in.TopN)
	}

	return r
}
