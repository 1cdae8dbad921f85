package visualization

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// ForceDirectedLayout implements the Fruchterman-Reingold spring layout.
// Positions depend only on the graph's insertion order and the seed.
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Scale == 0 {
		config.Scale = 1
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(g *coauthor.Graph) map[string]Position {
	adj := g.Adjacency()
	n := len(adj)
	if n == 0 {
		return make(map[string]Position)
	}

	// Single node - center it
	if n == 1 {
		return map[string]Position{g.Name(0): {}}
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))
	positions := make([]Position, n)
	for i := range positions {
		positions[i] = Position{X: rng.Float64(), Y: rng.Float64()}
	}

	connected := make([]map[int]bool, n)
	for i, neighbors := range adj {
		connected[i] = make(map[int]bool, len(neighbors))
		for _, j := range neighbors {
			connected[i][j] = true
		}
	}

	// Optimal distance
	k := fdl.config.K
	if k == 0 {
		k = math.Sqrt(1.0 / float64(n))
	}

	// Start at a tenth of the initial spread and cool linearly
	minX, maxX, minY, maxY := bounds(positions)
	temperature := math.Max(maxX-minX, maxY-minY) * 0.1
	cooling := temperature / float64(fdl.config.Iterations+1)

	displacement := make([]Position, n)
	for iter := 0; iter < fdl.config.Iterations; iter++ {
		for i := range displacement {
			displacement[i] = Position{}
		}

		// Repulsion between all pairs, attraction along edges
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				dx := positions[i].X - positions[j].X
				dy := positions[i].Y - positions[j].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / (dist * dist)
				if connected[i][j] {
					force -= dist / k
				}
				displacement[i].X += dx * force
				displacement[i].Y += dy * force
			}
		}

		// Move each node at most temperature along its displacement
		for i := range positions {
			length := math.Sqrt(displacement[i].X*displacement[i].X + displacement[i].Y*displacement[i].Y)
			if length < 0.01 {
				length = 0.1
			}
			positions[i].X += displacement[i].X * temperature / length
			positions[i].Y += displacement[i].Y * temperature / length
		}

		temperature -= cooling
	}

	rescale(positions, fdl.config.Scale)

	out := make(map[string]Position, n)
	for i, pos := range positions {
		out[g.Name(i)] = pos
	}
	return out
}
