// Package visualization lays out the co-authorship network and renders
// it, together with the summary charts, to image files.
package visualization

import (
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Seed       int64   // Source of the initial positions
	K          float64 // Optimal distance between nodes; 0 means 1/sqrt(n)
	Iterations int     // Number of iterations for iterative algorithms
	Scale      float64 // Half-width of the output box; 0 means 1
}

// Layout assigns a position to every author of a graph
type Layout interface {
	ComputeLayout(g *coauthor.Graph) map[string]Position
}
