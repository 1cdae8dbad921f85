package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// KHopOptions configures the k-hop neighbourhood traversal.
type KHopOptions struct {
	MaxHops    int // must be >= 1
	MaxResults int // 0 = unlimited; BFS order gives closer authors priority
}

// KHopResult holds the BFS neighbourhood of an author.
type KHopResult struct {
	Source         string
	ByHop          map[int][]string // hop distance → authors at that distance
	Distances      map[string]int   // author → shortest hop count
	Order          []string         // authors in discovery order
	TotalReachable int
}

// DefaultKHopOptions returns sensible defaults.
func DefaultKHopOptions() KHopOptions {
	return KHopOptions{MaxHops: 2}
}

type bfsEntry struct {
	node int
	hop  int
}

// KHopNeighbours performs a BFS from name up to MaxHops levels, returning
// every author discovered grouped by distance. The source is never
// included in the results.
func KHopNeighbours(g *coauthor.Graph, name string, opts KHopOptions) (*KHopResult, error) {
	if opts.MaxHops < 1 {
		return nil, fmt.Errorf("MaxHops must be >= 1, got %d", opts.MaxHops)
	}
	source, err := lookup(g, name)
	if err != nil {
		return nil, err
	}

	adj := g.Adjacency()
	visited := make([]bool, len(adj))
	visited[source] = true

	result := &KHopResult{
		Source:    name,
		ByHop:     make(map[int][]string),
		Distances: make(map[string]int),
	}

	queue := []bfsEntry{{node: source}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.hop >= opts.MaxHops {
			continue
		}
		nextHop := current.hop + 1

		for _, neighbor := range adj[current.node] {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true

			author := g.Name(neighbor)
			result.Distances[author] = nextHop
			result.ByHop[nextHop] = append(result.ByHop[nextHop], author)
			result.Order = append(result.Order, author)
			result.TotalReachable++

			if opts.MaxResults > 0 && result.TotalReachable >= opts.MaxResults {
				return result, nil
			}
			queue = append(queue, bfsEntry{node: neighbor, hop: nextHop})
		}
	}

	return result, nil
}
