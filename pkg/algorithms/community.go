package algorithms

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// GreedyModularity partitions the graph by Clauset-Newman-Moore
// agglomeration. Every author starts alone; the adjacent pair of
// communities whose merge raises modularity the most is merged until no
// merge has a non-negative gain. Equal gains go to the pair with the
// lowest indexes, so the result is fixed for a given insertion order.
func GreedyModularity(g *coauthor.Graph) *Partition {
	adj := g.Adjacency()
	n := len(adj)
	m := float64(g.EdgeCount())
	if n == 0 || m == 0 {
		groups := make([][]int, n)
		for i := range groups {
			groups[i] = []int{i}
		}
		return newPartition(g, groups)
	}

	// a[i] is the fraction of edge ends attached to community i; dq[i][j]
	// is the modularity change from merging i and j.
	a := make([]float64, n)
	dq := make([]map[int]float64, n)
	members := make([][]int, n)
	for i, neighbors := range adj {
		a[i] = float64(len(neighbors)) / (2 * m)
		members[i] = []int{i}
	}
	for i, neighbors := range adj {
		dq[i] = make(map[int]float64, len(neighbors))
		for _, j := range neighbors {
			dq[i][j] = 2 * (1/(2*m) - a[i]*a[j])
		}
	}

	for {
		bestI, bestJ := -1, -1
		best := 0.0
		for i := 0; i < n; i++ {
			for j, gain := range dq[i] {
				if j <= i {
					continue
				}
				if bestI < 0 || gain > best || (gain == best && (i < bestI || (i == bestI && j < bestJ))) {
					bestI, bestJ, best = i, j, gain
				}
			}
		}
		if bestI < 0 || best < 0 {
			break
		}
		mergeCommunities(dq, a, bestI, bestJ)
		members[bestI] = append(members[bestI], members[bestJ]...)
		members[bestJ] = nil
	}

	groups := make([][]int, 0)
	for _, group := range members {
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return newPartition(g, groups)
}

// mergeCommunities folds j into i and updates the gains of every
// community adjacent to either of them.
func mergeCommunities(dq []map[int]float64, a []float64, i, j int) {
	for k, gainJK := range dq[j] {
		if k == i {
			continue
		}
		if gainIK, ok := dq[i][k]; ok {
			dq[i][k] = gainIK + gainJK
		} else {
			dq[i][k] = gainJK - 2*a[i]*a[k]
		}
		dq[k][i] = dq[i][k]
		delete(dq[k], j)
	}
	for k, gainIK := range dq[i] {
		if k == j {
			continue
		}
		if _, ok := dq[j][k]; !ok {
			dq[i][k] = gainIK - 2*a[j]*a[k]
			dq[k][i] = dq[i][k]
		}
	}
	delete(dq[i], j)
	dq[j] = nil
	a[i] += a[j]
	a[j] = 0
}

// newPartition orders groups by descending size, ties by earliest member,
// and fills in names, densities and the modularity score.
func newPartition(g *coauthor.Graph, groups [][]int) *Partition {
	for _, group := range groups {
		sort.Ints(group)
	}
	sort.SliceStable(groups, func(x, y int) bool {
		if len(groups[x]) != len(groups[y]) {
			return len(groups[x]) > len(groups[y])
		}
		return groups[x][0] < groups[y][0]
	})

	p := &Partition{
		Communities:   make([]*Community, len(groups)),
		NodeCommunity: make(map[string]int, g.NodeCount()),
	}
	for id, group := range groups {
		names := make([]string, len(group))
		for k, idx := range group {
			names[k] = g.Name(idx)
			p.NodeCommunity[names[k]] = id
		}
		p.Communities[id] = &Community{
			ID:      id,
			Members: names,
			Size:    len(names),
			Density: density(g.Adjacency(), group),
		}
	}
	p.Modularity = modularity(g, groups)
	return p
}

func density(adj [][]int, group []int) float64 {
	size := len(group)
	if size < 2 {
		return 0
	}
	in := make(map[int]bool, size)
	for _, idx := range group {
		in[idx] = true
	}
	internal := 0
	for _, idx := range group {
		for _, nb := range adj[idx] {
			if in[nb] {
				internal++
			}
		}
	}
	// every internal edge was seen from both ends
	return float64(internal) / float64(size*(size-1))
}

// Modularity scores an arbitrary partition of g with resolution 1. A
// graph without edges scores 0.
func Modularity(g *coauthor.Graph, p *Partition) float64 {
	groups := make([][]int, 0, len(p.Communities))
	for _, c := range p.Communities {
		group := make([]int, 0, len(c.Members))
		for _, name := range c.Members {
			if idx, ok := g.Index(name); ok {
				group = append(group, idx)
			}
		}
		groups = append(groups, group)
	}
	return modularity(g, groups)
}

func modularity(g *coauthor.Graph, groups [][]int) float64 {
	if g.EdgeCount() == 0 {
		return 0
	}
	communities := make([][]graph.Node, len(groups))
	for i, group := range groups {
		nodes := make([]graph.Node, len(group))
		for k, idx := range group {
			nodes[k] = simple.Node(idx)
		}
		communities[i] = nodes
	}
	return community.Q(g.Gonum(), communities, 1)
}
