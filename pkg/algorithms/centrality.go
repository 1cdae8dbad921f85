package algorithms

import (
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// brandesCentrality runs a single O(VE) Brandes pass over every source and
// returns raw (unnormalised) betweenness per dense node index. Each
// unordered pair is counted from both ends, so the sum is over ordered
// pairs.
func brandesCentrality(adj [][]int) []float64 {
	n := len(adj)
	betweenness := make([]float64, n)

	stack := make([]int, 0, n)
	queue := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	delta := make([]float64, n)

	for source := 0; source < n; source++ {
		stack = stack[:0]
		queue = queue[:0]
		for i := 0; i < n; i++ {
			predecessors[i] = predecessors[i][:0]
			sigma[i] = 0
			distance[i] = -1
			delta[i] = 0
		}

		sigma[source] = 1
		distance[source] = 0
		queue = append(queue, source)

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)

			for _, w := range adj[v] {
				if distance[w] < 0 {
					queue = append(queue, w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of pair dependencies
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// normalisedBetweenness scales the ordered-pair sums into [0,1]. Graphs
// with two or fewer nodes have no intermediate vertices and score 0.
func normalisedBetweenness(adj [][]int) []float64 {
	raw := brandesCentrality(adj)
	n := len(adj)
	if n <= 2 {
		for i := range raw {
			raw[i] = 0
		}
		return raw
	}
	normFactor := 1.0 / float64((n-1)*(n-2))
	for i := range raw {
		raw[i] *= normFactor
	}
	return raw
}

// BetweennessCentrality computes betweenness centrality for all authors.
// Measures the fraction of shortest paths between other pairs that pass
// through an author.
func BetweennessCentrality(g *coauthor.Graph) map[string]float64 {
	return byName(g, normalisedBetweenness(g.Adjacency()))
}

// closeness computes Wasserman-Faust closeness per dense index. An author
// reaching r nodes (itself included) at total distance Σd scores
// ((r-1)/Σd) * ((r-1)/(n-1)), which keeps values comparable across
// components of different sizes. Isolated authors score 0.
func closeness(adj [][]int) []float64 {
	n := len(adj)
	scores := make([]float64, n)
	if n <= 1 {
		return scores
	}

	distance := make([]int, n)
	queue := make([]int, 0, n)

	for source := 0; source < n; source++ {
		for i := range distance {
			distance[i] = -1
		}
		distance[source] = 0
		queue = append(queue[:0], source)

		totalDistance := 0
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			totalDistance += distance[v]
			for _, w := range adj[v] {
				if distance[w] < 0 {
					distance[w] = distance[v] + 1
					queue = append(queue, w)
				}
			}
		}

		if totalDistance == 0 {
			continue
		}
		reached := float64(len(queue) - 1)
		scores[source] = (reached / float64(totalDistance)) * (reached / float64(n-1))
	}

	return scores
}

// ClosenessCentrality computes closeness centrality for all authors
func ClosenessCentrality(g *coauthor.Graph) map[string]float64 {
	return byName(g, closeness(g.Adjacency()))
}

// DegreeCentrality returns the number of distinct co-authors per author
func DegreeCentrality(g *coauthor.Graph) map[string]int {
	adj := g.Adjacency()
	degree := make(map[string]int, len(adj))
	for i, neighbors := range adj {
		degree[g.Name(i)] = len(neighbors)
	}
	return degree
}

func byName(g *coauthor.Graph, scores []float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for i, score := range scores {
		out[g.Name(i)] = score
	}
	return out
}

// CentralityResult contains every centrality measure for one graph
type CentralityResult struct {
	Degree           map[string]int
	Betweenness      map[string]float64
	Closeness        map[string]float64
	TopByBetweenness []RankedNode
	TopByCloseness   []RankedNode
	TopByDegree      []RankedNode
}

// ComputeAllCentrality computes degree, betweenness and closeness and the
// top n authors for each.
func ComputeAllCentrality(g *coauthor.Graph, n int) *CentralityResult {
	degree := DegreeCentrality(g)
	betweenness := BetweennessCentrality(g)
	closenessScores := ClosenessCentrality(g)

	degreeScores := make(map[string]float64, len(degree))
	for name, d := range degree {
		degreeScores[name] = float64(d)
	}

	order := g.Nodes()
	return &CentralityResult{
		Degree:           degree,
		Betweenness:      betweenness,
		Closeness:        closenessScores,
		TopByBetweenness: TopN(betweenness, order, n),
		TopByCloseness:   TopN(closenessScores, order, n),
		TopByDegree:      TopN(degreeScores, order, n),
	}
}
