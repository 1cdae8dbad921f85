package algorithms

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// LinkPredictionMethod selects the scoring formula for link prediction.
type LinkPredictionMethod int

const (
	// LinkPredCommonNeighbours scores by |N(u) ∩ N(v)|, an integer count.
	LinkPredCommonNeighbours LinkPredictionMethod = iota

	// LinkPredAdamicAdar scores by Σ_{w ∈ N(u)∩N(v)} 1/log(|N(w)|), giving
	// more weight to shared co-authors with few collaborators.
	LinkPredAdamicAdar

	// LinkPredJaccard scores by |N(u) ∩ N(v)| / |N(u) ∪ N(v)|.
	LinkPredJaccard

	// LinkPredPreferentialAttachment scores by |N(u)| × |N(v)|.
	LinkPredPreferentialAttachment
)

var linkPredictionNames = map[LinkPredictionMethod]string{
	LinkPredCommonNeighbours:       "common_neighbours",
	LinkPredAdamicAdar:             "adamic_adar",
	LinkPredJaccard:                "jaccard",
	LinkPredPreferentialAttachment: "preferential_attachment",
}

func (m LinkPredictionMethod) String() string {
	if name, ok := linkPredictionNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseLinkPredictionMethod maps a method name, case-insensitively, to
// its method
func ParseLinkPredictionMethod(name string) (LinkPredictionMethod, error) {
	for m, n := range linkPredictionNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown link prediction method %q", name)
}

// LinkPredictionOptions configures link prediction.
//
// Scores across different methods are not comparable. Common Neighbours
// returns integer counts, Adamic-Adar weighted sums, Jaccard ratios in
// (0,1] and Preferential Attachment degree products.
type LinkPredictionOptions struct {
	Method LinkPredictionMethod
	TopK   int // default 10, 0 = all
}

// LinkPrediction is a suggested collaboration and its score.
type LinkPrediction struct {
	Author string
	Score  float64
}

// LinkPredictionResult holds the suggestions for one author.
type LinkPredictionResult struct {
	Source      string
	Predictions []LinkPrediction // sorted desc by Score, ties in node order
}

// DefaultLinkPredictionOptions returns sensible defaults.
func DefaultLinkPredictionOptions() LinkPredictionOptions {
	return LinkPredictionOptions{
		Method: LinkPredCommonNeighbours,
		TopK:   10,
	}
}

func neighborSet(adj [][]int, u int) map[int]bool {
	set := make(map[int]bool, len(adj[u]))
	for _, v := range adj[u] {
		set[v] = true
	}
	return set
}

// PredictLinkScore scores a single pair of authors.
func PredictLinkScore(g *coauthor.Graph, a, b string, opts LinkPredictionOptions) (float64, error) {
	u, err := lookup(g, a)
	if err != nil {
		return 0, err
	}
	v, err := lookup(g, b)
	if err != nil {
		return 0, err
	}
	return computeLinkScore(g.Adjacency(), u, v, opts.Method), nil
}

// PredictLinksFor scores name against every author it has not yet
// co-authored with. Zero scores are left out.
func PredictLinksFor(g *coauthor.Graph, name string, opts LinkPredictionOptions) (*LinkPredictionResult, error) {
	source, err := lookup(g, name)
	if err != nil {
		return nil, err
	}

	adj := g.Adjacency()
	sourceSet := neighborSet(adj, source)

	var predictions []LinkPrediction
	for other := range adj {
		if other == source || sourceSet[other] {
			continue
		}
		score := computeLinkScore(adj, source, other, opts.Method)
		if score > 0 {
			predictions = append(predictions, LinkPrediction{Author: g.Name(other), Score: score})
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Score > predictions[j].Score
	})
	if opts.TopK > 0 && len(predictions) > opts.TopK {
		predictions = predictions[:opts.TopK]
	}

	return &LinkPredictionResult{Source: name, Predictions: predictions}, nil
}

// computeLinkScore calculates the prediction score for authors u and v.
// Shared co-authors are visited in u's neighbor order so sums are
// reproducible.
func computeLinkScore(adj [][]int, u, v int, method LinkPredictionMethod) float64 {
	if method == LinkPredPreferentialAttachment {
		return float64(len(adj[u])) * float64(len(adj[v]))
	}

	setV := neighborSet(adj, v)
	common := 0
	adamicAdar := 0.0
	for _, w := range adj[u] {
		if !setV[w] {
			continue
		}
		common++
		// degree 1 would divide by log(1) = 0
		if degree := len(adj[w]); degree > 1 {
			adamicAdar += 1.0 / math.Log(float64(degree))
		}
	}

	switch method {
	case LinkPredCommonNeighbours:
		return float64(common)
	case LinkPredAdamicAdar:
		return adamicAdar
	case LinkPredJaccard:
		if common == 0 {
			return 0
		}
		return float64(common) / float64(len(adj[u])+len(adj[v])-common)
	default:
		return 0
	}
}
