package algorithms

import (
	"container/list"
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// ErrUnknownAuthor is returned when a traversal starts from a name that
// is not in the graph
var ErrUnknownAuthor = errors.New("unknown author")

func lookup(g *coauthor.Graph, name string) (int, error) {
	i, ok := g.Index(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAuthor, name)
	}
	return i, nil
}

// CollaborationPath returns a shortest chain of co-authors from one author
// to another, both ends included, using bidirectional BFS. It returns nil
// when the authors are in different components.
func CollaborationPath(g *coauthor.Graph, from, to string) ([]string, error) {
	start, err := lookup(g, from)
	if err != nil {
		return nil, err
	}
	end, err := lookup(g, to)
	if err != nil {
		return nil, err
	}
	if start == end {
		return []string{from}, nil
	}

	adj := g.Adjacency()

	// node -> parent; the roots are their own parent
	forwardVisited := map[int]int{start: start}
	backwardVisited := map[int]int{end: end}

	forwardQueue := list.New()
	forwardQueue.PushBack(start)
	backwardQueue := list.New()
	backwardQueue.PushBack(end)

	for forwardQueue.Len() > 0 && backwardQueue.Len() > 0 {
		if meeting, ok := expandFrontier(adj, forwardQueue, forwardVisited, backwardVisited); ok {
			return namePath(g, reconstructPath(meeting, forwardVisited, backwardVisited)), nil
		}
		if meeting, ok := expandFrontier(adj, backwardQueue, backwardVisited, forwardVisited); ok {
			return namePath(g, reconstructPath(meeting, forwardVisited, backwardVisited)), nil
		}
	}

	return nil, nil
}

// expandFrontier expands one BFS level and reports the first node also
// reached by the other search
func expandFrontier(adj [][]int, queue *list.List, visited, otherVisited map[int]int) (int, bool) {
	levelSize := queue.Len()
	for i := 0; i < levelSize; i++ {
		current := queue.Remove(queue.Front()).(int)

		for _, neighbor := range adj[current] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = current
			if _, found := otherVisited[neighbor]; found {
				return neighbor, true
			}
			queue.PushBack(neighbor)
		}
	}
	return 0, false
}

// reconstructPath joins the two parent chains at the meeting node
func reconstructPath(meeting int, forwardVisited, backwardVisited map[int]int) []int {
	var path []int
	for node := meeting; ; node = forwardVisited[node] {
		path = append(path, node)
		if forwardVisited[node] == node {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	for node := meeting; backwardVisited[node] != node; {
		node = backwardVisited[node]
		path = append(path, node)
	}
	return path
}

func namePath(g *coauthor.Graph, path []int) []string {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = g.Name(n)
	}
	return names
}

// CollaborationDistances returns the hop count from name to every author
// reachable from it, name itself included at 0
func CollaborationDistances(g *coauthor.Graph, name string) (map[string]int, error) {
	source, err := lookup(g, name)
	if err != nil {
		return nil, err
	}

	adj := g.Adjacency()
	dist := make([]int, len(adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := list.New()
	queue.PushBack(source)
	distances := map[string]int{name: 0}

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(int)
		for _, neighbor := range adj[current] {
			if dist[neighbor] >= 0 {
				continue
			}
			dist[neighbor] = dist[current] + 1
			distances[g.Name(neighbor)] = dist[neighbor]
			queue.PushBack(neighbor)
		}
	}

	return distances, nil
}
