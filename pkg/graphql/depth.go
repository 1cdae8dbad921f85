package graphql

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// DefaultMaxDepth bounds coauthors { coauthors { ... } } chains
const DefaultMaxDepth = 6

// calculateQueryDepth calculates the maximum depth of a GraphQL query
func calculateQueryDepth(document *ast.Document) int {
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, definition := range document.Definitions {
		if def, ok := definition.(*ast.FragmentDefinition); ok {
			fragments[def.Name.Value] = def
		}
	}

	maxDepth := 0
	for _, definition := range document.Definitions {
		if def, ok := definition.(*ast.OperationDefinition); ok {
			depth := calculateSelectionSetDepth(def.SelectionSet, 0, fragments, map[string]bool{})
			if depth > maxDepth {
				maxDepth = depth
			}
		}
	}

	return maxDepth
}

// calculateSelectionSetDepth recursively calculates the depth of a selection
// set. Leaf fields add nothing; each nested selection set adds one.
func calculateSelectionSetDepth(selectionSet *ast.SelectionSet, currentDepth int, fragments map[string]*ast.FragmentDefinition, visiting map[string]bool) int {
	if selectionSet == nil || len(selectionSet.Selections) == 0 {
		return currentDepth
	}

	maxDepth := currentDepth

	for _, selection := range selectionSet.Selections {
		depth := currentDepth
		switch sel := selection.(type) {
		case *ast.Field:
			// Skip introspection fields
			if strings.HasPrefix(sel.Name.Value, "__") {
				continue
			}
			if sel.SelectionSet != nil {
				depth = calculateSelectionSetDepth(sel.SelectionSet, currentDepth+1, fragments, visiting)
			}

		case *ast.InlineFragment:
			depth = calculateSelectionSetDepth(sel.SelectionSet, currentDepth, fragments, visiting)

		case *ast.FragmentSpread:
			name := sel.Name.Value
			def, ok := fragments[name]
			if !ok || visiting[name] {
				continue
			}
			visiting[name] = true
			depth = calculateSelectionSetDepth(def.SelectionSet, currentDepth, fragments, visiting)
			delete(visiting, name)
		}
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	return maxDepth
}

// ValidateQueryDepth validates a query against the depth limit
func ValidateQueryDepth(query string, maxDepth int) error {
	document, err := parser.Parse(parser.ParseParams{
		Source: query,
	})
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	queryDepth := calculateQueryDepth(document)
	if queryDepth > maxDepth {
		return fmt.Errorf("query depth %d exceeds maximum allowed depth %d", queryDepth, maxDepth)
	}

	return nil
}
