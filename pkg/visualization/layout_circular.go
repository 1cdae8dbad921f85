package visualization

import (
	"math"

	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Scale == 0 {
		config.Scale = 1
	}
	return &CircularLayout{config: config}
}

// ComputeLayout places nodes on a circle in insertion order
func (cl *CircularLayout) ComputeLayout(g *coauthor.Graph) map[string]Position {
	names := g.Nodes()
	positions := make(map[string]Position, len(names))

	if len(names) == 0 {
		return positions
	}
	if len(names) == 1 {
		positions[names[0]] = Position{}
		return positions
	}

	radius := cl.config.Scale
	angleStep := 2 * math.Pi / float64(len(names))

	for i, name := range names {
		angle := float64(i) * angleStep
		positions[name] = Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}

	return positions
}
