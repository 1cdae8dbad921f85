package visualization

import (
	"sort"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// HierarchicalLayout arranges each connected component in breadth-first
// levels below its best connected author. Components sit side by side in
// the order their roots are visited.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Scale == 0 {
		config.Scale = 1
	}
	return &HierarchicalLayout{config: config}
}

// ComputeLayout arranges nodes hierarchically
func (hl *HierarchicalLayout) ComputeLayout(g *coauthor.Graph) map[string]Position {
	adj := g.Adjacency()
	n := len(adj)
	positions := make(map[string]Position, n)

	if n == 0 {
		return positions
	}

	// Roots are visited by descending degree; ties keep insertion order
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(adj[order[i]]) > len(adj[order[j]])
	})

	visited := make([]bool, n)
	coords := make([]Position, n)
	offsetX := 0.0

	for _, root := range order {
		if visited[root] {
			continue
		}

		// Build levels using BFS
		var levels [][]int
		visited[root] = true
		currentLevel := []int{root}
		for len(currentLevel) > 0 {
			levels = append(levels, currentLevel)
			var nextLevel []int
			for _, u := range currentLevel {
				for _, v := range adj[u] {
					if !visited[v] {
						visited[v] = true
						nextLevel = append(nextLevel, v)
					}
				}
			}
			currentLevel = nextLevel
		}

		width := 0
		for _, level := range levels {
			width = max(width, len(level))
		}

		// Position nodes: one unit per slot, levels centred in the component
		for depth, level := range levels {
			start := offsetX + float64(width-len(level))/2
			for i, u := range level {
				coords[u] = Position{X: start + float64(i), Y: -float64(depth)}
			}
		}
		offsetX += float64(width) + 1
	}

	rescale(coords, hl.config.Scale)
	for i, c := range coords {
		positions[g.Name(i)] = c
	}
	return positions
}
