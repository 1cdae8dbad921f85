package graphql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

// OrderByInput represents sorting criteria
type OrderByInput struct {
	Field     string
	Direction string
}

func createOrderByInputType() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderByInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"field": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.String),
			},
			"direction": &graphql.InputObjectFieldConfig{
				Type:         graphql.String,
				DefaultValue: "DESC",
			},
		},
	})
}

// parseOrderBy parses the orderBy argument. A nil result keeps source order.
func parseOrderBy(args map[string]any, allowed map[string]bool) (*OrderByInput, error) {
	orderByArg, ok := args["orderBy"]
	if !ok || orderByArg == nil {
		return nil, nil
	}

	orderByMap, ok := orderByArg.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("orderBy must be an object")
	}

	field, _ := orderByMap["field"].(string)
	direction, _ := orderByMap["direction"].(string)
	direction = strings.ToUpper(direction)
	if direction == "" {
		direction = "DESC"
	}

	if !allowed[field] {
		return nil, fmt.Errorf("cannot order by %q", field)
	}
	if direction != "ASC" && direction != "DESC" {
		return nil, fmt.Errorf("direction must be ASC or DESC, got %q", direction)
	}

	return &OrderByInput{
		Field:     field,
		Direction: direction,
	}, nil
}

var authorOrderFields = map[string]bool{
	"name": true, "articles": true, "degree": true, "betweenness": true,
	"closeness": true, "clustering": true, "community": true,
}

var paperOrderFields = map[string]bool{
	"row": true, "title": true, "year": true, "cites": true, "citesPerYear": true,
}

func authorKey(a report.AuthorMetrics, field string) float64 {
	switch field {
	case "articles":
		return float64(a.Articles)
	case "degree":
		return float64(a.Degree)
	case "betweenness":
		return a.Betweenness
	case "closeness":
		return a.Closeness
	case "clustering":
		return a.Clustering
	case "community":
		return float64(a.Community)
	}
	return 0
}

// sortAuthors sorts a copy of authors. Ties keep their snapshot order.
func sortAuthors(authors []report.AuthorMetrics, orderBy *OrderByInput) []report.AuthorMetrics {
	out := append([]report.AuthorMetrics(nil), authors...)
	if orderBy == nil {
		return out
	}

	desc := orderBy.Direction == "DESC"
	sort.SliceStable(out, func(i, j int) bool {
		if orderBy.Field == "name" {
			if desc {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
		}
		a, b := authorKey(out[i], orderBy.Field), authorKey(out[j], orderBy.Field)
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

// paperKey returns the sort value of p and whether it is present
func paperKey(p report.Paper, field string) (float64, bool) {
	switch field {
	case "row":
		return float64(p.Row), true
	case "year":
		if p.Year == nil {
			return 0, false
		}
		return float64(*p.Year), true
	case "cites":
		if p.Cites == nil {
			return 0, false
		}
		return float64(*p.Cites), true
	case "citesPerYear":
		if p.CitesPerYear == nil {
			return 0, false
		}
		return *p.CitesPerYear, true
	}
	return 0, false
}

// sortPapers sorts a copy of papers. Missing values sort last in either
// direction; ties keep row order.
func sortPapers(papers []report.Paper, orderBy *OrderByInput) []report.Paper {
	out := append([]report.Paper(nil), papers...)
	if orderBy == nil {
		return out
	}

	desc := orderBy.Direction == "DESC"
	sort.SliceStable(out, func(i, j int) bool {
		if orderBy.Field == "title" {
			if desc {
				return out[i].Title > out[j].Title
			}
			return out[i].Title < out[j].Title
		}
		a, okA := paperKey(out[i], orderBy.Field)
		b, okB := paperKey(out[j], orderBy.Field)
		if okA != okB {
			return okA
		}
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}
