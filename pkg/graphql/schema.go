package graphql

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

// GenerateSchema builds the query schema over snap. Fields resolve from
// struct fields by name, so types only declare what differs.
func GenerateSchema(snap *report.Snapshot, limits *LimitConfig) (graphql.Schema, error) {
	if snap == nil {
		return graphql.Schema{}, fmt.Errorf("snapshot is nil")
	}
	if limits == nil {
		limits = DefaultLimitConfig()
	}
	if err := ValidateLimitConfig(limits); err != nil {
		return graphql.Schema{}, err
	}

	idx := newSnapshotIndex(snap)
	orderByInputType := createOrderByInputType()

	paperType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Paper",
		Fields: graphql.Fields{
			"row":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":        &graphql.Field{Type: graphql.String},
			"authors":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"year":         &graphql.Field{Type: graphql.Int},
			"citesPerYear": &graphql.Field{Type: graphql.Float},
			"cites":        &graphql.Field{Type: graphql.Int},
		},
	})

	var authorType *graphql.Object
	traversal := createTraversalTypes(func() *graphql.Object { return authorType })
	authorType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"articles":    &graphql.Field{Type: graphql.Int},
				"degree":      &graphql.Field{Type: graphql.Int},
				"betweenness": &graphql.Field{Type: graphql.Float},
				"closeness":   &graphql.Field{Type: graphql.Float},
				"clustering":  &graphql.Field{Type: graphql.Float},
				"community":   &graphql.Field{Type: graphql.Int},
				"x":           &graphql.Field{Type: graphql.Float},
				"y":           &graphql.Field{Type: graphql.Float},
				"coauthors": &graphql.Field{
					Type: graphql.NewList(authorType),
					Args: graphql.FieldConfigArgument{
						"limit": &graphql.ArgumentConfig{Type: graphql.Int},
					},
					Resolve: func(p graphql.ResolveParams) (any, error) {
						a, ok := p.Source.(report.AuthorMetrics)
						if !ok {
							return nil, nil
						}
						return truncate(idx.coauthorsOf(a.Name), limitArg(p.Args, limits)), nil
					},
				},
				"papers": &graphql.Field{
					Type: graphql.NewList(paperType),
					Resolve: func(p graphql.ResolveParams) (any, error) {
						a, ok := p.Source.(report.AuthorMetrics)
						if !ok {
							return nil, nil
						}
						return idx.papersOf(a.Name), nil
					},
				},
				"suggestedCoauthors": suggestedCoauthorsField(idx, traversal, limits),
			}
		}),
	})

	communityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Community",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"size":    &graphql.Field{Type: graphql.Int},
			"density": &graphql.Field{Type: graphql.Float},
			"memberNames": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, ok := p.Source.(*algorithms.Community)
					if !ok {
						return nil, nil
					}
					return c.Members, nil
				},
			},
			"members": &graphql.Field{
				Type: graphql.NewList(authorType),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, ok := p.Source.(*algorithms.Community)
					if !ok {
						return nil, nil
					}
					return truncate(idx.communityMembers(c.ID), limitArg(p.Args, limits)), nil
				},
			},
		},
	})

	summaryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Summary",
		Fields: graphql.Fields{
			"source":            &graphql.Field{Type: graphql.String},
			"articles":          &graphql.Field{Type: graphql.Int},
			"invalidValues":     &graphql.Field{Type: graphql.Int},
			"authors":           &graphql.Field{Type: graphql.Int},
			"collaborations":    &graphql.Field{Type: graphql.Int},
			"communities":       &graphql.Field{Type: graphql.Int},
			"modularity":        &graphql.Field{Type: graphql.Float},
			"components":        &graphql.Field{Type: graphql.Int},
			"largestComponent":  &graphql.Field{Type: graphql.Int},
			"triangles":         &graphql.Field{Type: graphql.Int},
			"averageClustering": &graphql.Field{Type: graphql.Float},
		},
	})

	runType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Run",
		Fields: graphql.Fields{
			"runId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"source": &graphql.Field{Type: graphql.String},
			"digest": &graphql.Field{Type: graphql.String},
			"topic": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if snap.Report == nil {
						return nil, nil
					}
					return snap.Report.Topic, nil
				},
			},
			"generatedAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return snap.GeneratedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	yearType := graphql.NewObject(graphql.ObjectConfig{
		Name: "YearCount",
		Fields: graphql.Fields{
			"year":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	binType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bin",
		Fields: graphql.Fields{
			"min":   &graphql.Field{Type: graphql.Float},
			"max":   &graphql.Field{Type: graphql.Float},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	listArgs := func(withOrder bool) graphql.FieldConfigArgument {
		args := graphql.FieldConfigArgument{
			"limit": &graphql.ArgumentConfig{Type: graphql.Int},
		}
		if withOrder {
			args["orderBy"] = &graphql.ArgumentConfig{Type: orderByInputType}
		}
		return args
	}

	queryFields := graphql.Fields{
		// Always include a health check query
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return "ok", nil
			},
		},
		"run": &graphql.Field{
			Type: runType,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return snap, nil
			},
		},
		"summary": &graphql.Field{
			Type: summaryType,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if snap.Report == nil {
					return nil, nil
				}
				return snap.Report.Summary, nil
			},
		},
		"author": &graphql.Field{
			Type: authorType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				name, _ := p.Args["name"].(string)
				a, ok := idx.author(name)
				if !ok {
					return nil, fmt.Errorf("author %q not found", name)
				}
				return a, nil
			},
		},
		"authors": &graphql.Field{
			Type: graphql.NewList(authorType),
			Args: listArgs(true),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				orderBy, err := parseOrderBy(p.Args, authorOrderFields)
				if err != nil {
					return nil, err
				}
				return truncate(sortAuthors(snap.Authors, orderBy), limitArg(p.Args, limits)), nil
			},
		},
		"papers": &graphql.Field{
			Type: graphql.NewList(paperType),
			Args: listArgs(true),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				orderBy, err := parseOrderBy(p.Args, paperOrderFields)
				if err != nil {
					return nil, err
				}
				return truncate(sortPapers(snap.Papers, orderBy), limitArg(p.Args, limits)), nil
			},
		},
		"communities": &graphql.Field{
			Type: graphql.NewList(communityType),
			Args: listArgs(false),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return truncate(snap.Communities, limitArg(p.Args, limits)), nil
			},
		},
		"community": &graphql.Field{
			Type: communityType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id, _ := p.Args["id"].(int)
				for _, c := range snap.Communities {
					if c.ID == id {
						return c, nil
					}
				}
				return nil, fmt.Errorf("community %d not found", id)
			},
		},
		"years": &graphql.Field{
			Type: graphql.NewList(yearType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if snap.Report == nil {
					return nil, nil
				}
				return snap.Report.ArticlesPerYear, nil
			},
		},
		"citationDensity": &graphql.Field{
			Type: graphql.NewList(binType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if snap.Report == nil {
					return nil, nil
				}
				return snap.Report.CitationDensity.Bins, nil
			},
		},
	}

	for name, field := range traversalQueryFields(idx, traversal, limits) {
		queryFields[name] = field
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}
