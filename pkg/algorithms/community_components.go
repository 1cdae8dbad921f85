package algorithms

import "github.com/dd0wney/cluso-coauthor/pkg/coauthor"

// ConnectedComponents finds the groups of authors linked by any chain of
// collaborations. The result is a Partition, largest component first.
func ConnectedComponents(g *coauthor.Graph) *Partition {
	adj := g.Adjacency()
	visited := make([]bool, len(adj))
	groups := make([][]int, 0)

	// BFS from each unvisited author in insertion order
	for start := range adj {
		if visited[start] {
			continue
		}
		visited[start] = true
		component := []int{start}

		for head := 0; head < len(component); head++ {
			for _, nb := range adj[component[head]] {
				if !visited[nb] {
					visited[nb] = true
					component = append(component, nb)
				}
			}
		}
		groups = append(groups, component)
	}

	return newPartition(g, groups)
}
