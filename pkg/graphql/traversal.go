package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

// MaxHops bounds the neighbourhood traversal
const MaxHops = 6

type pathResult struct {
	Hops    int
	Authors []report.AuthorMetrics
}

type neighbour struct {
	Hops   int
	Author report.AuthorMetrics
}

type suggestion struct {
	Author report.AuthorMetrics
	Score  float64
}

// traversalTypes are the object types that wrap authors found by walking
// the co-authorship graph
type traversalTypes struct {
	path       *graphql.Object
	neighbour  *graphql.Object
	suggestion *graphql.Object
}

func createTraversalTypes(authorType func() *graphql.Object) traversalTypes {
	return traversalTypes{
		path: graphql.NewObject(graphql.ObjectConfig{
			Name: "Path",
			Fields: graphql.FieldsThunk(func() graphql.Fields {
				return graphql.Fields{
					"hops":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
					"authors": &graphql.Field{Type: graphql.NewList(authorType())},
				}
			}),
		}),
		neighbour: graphql.NewObject(graphql.ObjectConfig{
			Name: "Neighbour",
			Fields: graphql.FieldsThunk(func() graphql.Fields {
				return graphql.Fields{
					"hops":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
					"author": &graphql.Field{Type: authorType()},
				}
			}),
		}),
		suggestion: graphql.NewObject(graphql.ObjectConfig{
			Name: "Suggestion",
			Fields: graphql.FieldsThunk(func() graphql.Fields {
				return graphql.Fields{
					"author": &graphql.Field{Type: authorType()},
					"score":  &graphql.Field{Type: graphql.Float},
				}
			}),
		}),
	}
}

// suggestedCoauthorsField scores the authors the source author has not
// written with
func suggestedCoauthorsField(idx *snapshotIndex, types traversalTypes, limits *LimitConfig) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(types.suggestion),
		Args: graphql.FieldConfigArgument{
			"method": &graphql.ArgumentConfig{
				Type:         graphql.String,
				DefaultValue: algorithms.LinkPredCommonNeighbours.String(),
			},
			"limit": &graphql.ArgumentConfig{Type: graphql.Int},
		},
		Resolve: func(p graphql.ResolveParams) (any, error) {
			a, ok := p.Source.(report.AuthorMetrics)
			if !ok {
				return nil, nil
			}
			name, _ := p.Args["method"].(string)
			method, err := algorithms.ParseLinkPredictionMethod(name)
			if err != nil {
				return nil, err
			}

			limit := limitArg(p.Args, limits)
			if limit == 0 {
				return []suggestion{}, nil
			}
			res, err := algorithms.PredictLinksFor(idx.graph, a.Name, algorithms.LinkPredictionOptions{
				Method: method,
				TopK:   limit,
			})
			if err != nil {
				return nil, err
			}

			out := make([]suggestion, 0, len(res.Predictions))
			for _, pred := range res.Predictions {
				if author, ok := idx.author(pred.Author); ok {
					out = append(out, suggestion{Author: author, Score: pred.Score})
				}
			}
			return out, nil
		},
	}
}

func traversalQueryFields(idx *snapshotIndex, types traversalTypes, limits *LimitConfig) graphql.Fields {
	return graphql.Fields{
		"path": &graphql.Field{
			Type:        types.path,
			Description: "A shortest chain of co-authors between two authors, null when they are not connected",
			Args: graphql.FieldConfigArgument{
				"from": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"to":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				from, _ := p.Args["from"].(string)
				to, _ := p.Args["to"].(string)
				names, err := algorithms.CollaborationPath(idx.graph, from, to)
				if err != nil {
					return nil, err
				}
				if names == nil {
					return nil, nil
				}
				return pathResult{Hops: len(names) - 1, Authors: idx.authors(names)}, nil
			},
		},
		"neighbourhood": &graphql.Field{
			Type:        graphql.NewList(types.neighbour),
			Description: "Authors within a number of co-authorship hops, closest first",
			Args: graphql.FieldConfigArgument{
				"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"hops":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 2},
				"limit": &graphql.ArgumentConfig{Type: graphql.Int},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				name, _ := p.Args["name"].(string)
				hops, _ := p.Args["hops"].(int)
				hops = min(hops, MaxHops)

				res, err := algorithms.KHopNeighbours(idx.graph, name, algorithms.KHopOptions{MaxHops: hops})
				if err != nil {
					return nil, err
				}

				out := make([]neighbour, 0, len(res.Order))
				for _, n := range truncate(res.Order, limitArg(p.Args, limits)) {
					if author, ok := idx.author(n); ok {
						out = append(out, neighbour{Hops: res.Distances[n], Author: author})
					}
				}
				return out, nil
			},
		},
	}
}
