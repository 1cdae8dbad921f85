package visualization

import (
	"fmt"
)

// Layout algorithm names
const (
	LayoutSpring       = "spring"
	LayoutCircular     = "circular"
	LayoutHierarchical = "hierarchical"
)

// NewLayout returns the layout registered under name
func NewLayout(name string, config *LayoutConfig) (Layout, error) {
	switch name {
	case LayoutSpring, "":
		return NewForceDirectedLayout(config), nil
	case LayoutCircular:
		return NewCircularLayout(config), nil
	case LayoutHierarchical:
		return NewHierarchicalLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}
