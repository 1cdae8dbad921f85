package algorithms

import "github.com/dd0wney/cluso-coauthor/pkg/coauthor"

// TriangleCountResult holds triangle counting results including per-author
// counts, the global count and local clustering coefficients.
type TriangleCountResult struct {
	PerNode                map[string]int
	GlobalCount            int
	ClusteringCoefficients map[string]float64
	AverageClustering      float64
	TopNodes               []RankedNode
}

// CountTriangles counts closed author triples. For each author u, it
// checks every pair (v,w) of u's co-authors; if v and w also co-authored,
// that's a triangle. Each triangle is counted once per participating
// author, so GlobalCount = sum(PerNode) / 3.
func CountTriangles(g *coauthor.Graph, topN int) *TriangleCountResult {
	adj := g.Adjacency()
	n := len(adj)

	neighborSets := make([]map[int]bool, n)
	for u, neighbors := range adj {
		set := make(map[int]bool, len(neighbors))
		for _, v := range neighbors {
			set[v] = true
		}
		neighborSets[u] = set
	}

	perNode := make(map[string]int, n)
	coefficients := make(map[string]float64, n)
	total := 0
	sumCoefficients := 0.0
	for u, neighbors := range adj {
		count := 0
		for i := 0; i < len(neighbors); i++ {
			v := neighbors[i]
			for j := i + 1; j < len(neighbors); j++ {
				if neighborSets[v][neighbors[j]] {
					count++
				}
			}
		}
		name := g.Name(u)
		perNode[name] = count
		total += count

		k := len(neighbors)
		if k < 2 {
			coefficients[name] = 0
			continue
		}
		coefficients[name] = float64(count) / float64(k*(k-1)/2)
		sumCoefficients += coefficients[name]
	}

	result := &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            total / 3,
		ClusteringCoefficients: coefficients,
	}
	if n > 0 {
		result.AverageClustering = sumCoefficients / float64(n)
	}

	floatScores := make(map[string]float64, len(perNode))
	for name, c := range perNode {
		floatScores[name] = float64(c)
	}
	result.TopNodes = TopN(floatScores, g.Nodes(), topN)

	return result
}
