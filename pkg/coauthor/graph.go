// Package coauthor builds the undirected co-authorship graph: one node per
// author name, one edge per pair of authors sharing at least one article.
//
// Node identity is the trimmed name, compared exactly. Nodes and
// neighbor lists keep first-insertion order so every traversal, ranking
// and layout over the graph is deterministic for a given input.
package coauthor

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
)

// Edge is an unordered author pair, A inserted before B
type Edge struct {
	A string
	B string
}

// Graph is a simple undirected graph keyed by author name
type Graph struct {
	g     *simple.UndirectedGraph
	index map[string]int
	names []string
	adj   [][]int
	edges []Edge
}

// New returns an empty graph
func New() *Graph {
	return &Graph{
		g:     simple.NewUndirectedGraph(),
		index: make(map[string]int),
	}
}

// Build adds every article with authors to a new graph
func Build(articles []bibliography.Article) *Graph {
	g := New()
	for _, a := range articles {
		if !a.HasAuthors() {
			continue
		}
		g.AddArticle(a.Authors)
	}
	return g
}

// AddArticle links every distinct pair of names in one author list and
// returns the number of new edges. Single authors and repeated names add
// nothing.
func (g *Graph) AddArticle(authors []string) int {
	added := 0
	for i := 0; i < len(authors); i++ {
		for j := i + 1; j < len(authors); j++ {
			if g.AddEdge(authors[i], authors[j]) {
				added++
			}
		}
	}
	return added
}

// AddEdge inserts the edge a–b. It returns false for self pairs and for
// edges already present.
func (g *Graph) AddEdge(a, b string) bool {
	if a == b || a == "" || b == "" {
		return false
	}
	ia := g.ensure(a)
	ib := g.ensure(b)
	if g.g.HasEdgeBetween(int64(ia), int64(ib)) {
		return false
	}
	g.g.SetEdge(simple.Edge{F: simple.Node(ia), T: simple.Node(ib)})
	g.adj[ia] = append(g.adj[ia], ib)
	g.adj[ib] = append(g.adj[ib], ia)
	g.edges = append(g.edges, Edge{A: a, B: b})
	return true
}

func (g *Graph) ensure(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.names)
	g.index[name] = i
	g.names = append(g.names, name)
	g.adj = append(g.adj, nil)
	g.g.AddNode(simple.Node(i))
	return i
}

// NodeCount returns the number of authors
func (g *Graph) NodeCount() int {
	return len(g.names)
}

// EdgeCount returns the number of distinct co-author pairs
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns the author names in insertion order
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Edges returns the edges in insertion order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// HasNode reports whether name is an author in the graph
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// HasEdge reports whether a and b co-authored
func (g *Graph) HasEdge(a, b string) bool {
	ia, okA := g.index[a]
	ib, okB := g.index[b]
	if !okA || !okB {
		return false
	}
	return g.g.HasEdgeBetween(int64(ia), int64(ib))
}

// Degree returns the number of distinct co-authors of name
func (g *Graph) Degree(name string) int {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// Neighbors returns the co-authors of name in insertion order
func (g *Graph) Neighbors(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.names[j]
	}
	return out
}

// Index returns the dense node index of name, in [0, NodeCount)
func (g *Graph) Index(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Name returns the author at a dense node index
func (g *Graph) Name(i int) string {
	return g.names[i]
}

// Adjacency returns the index-based adjacency lists. The slices are
// shared with the graph and must not be modified.
func (g *Graph) Adjacency() [][]int {
	return g.adj
}

// Gonum exposes the graph for gonum algorithms. Node IDs equal the dense
// indexes returned by Index.
func (g *Graph) Gonum() graph.Undirected {
	return g.g
}
