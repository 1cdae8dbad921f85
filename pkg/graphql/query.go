package graphql

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/dd0wney/cluso-coauthor/pkg/logging"
	"github.com/dd0wney/cluso-coauthor/pkg/metrics"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

// Options configures an Executor. Zero values select the defaults.
type Options struct {
	Limits   *LimitConfig
	MaxDepth int
	Metrics  *metrics.Registry
	Logger   logging.Logger
}

// Executor runs depth-checked queries against one snapshot
type Executor struct {
	schema   graphql.Schema
	maxDepth int
	metrics  *metrics.Registry
	logger   logging.Logger
}

// NewExecutor builds the schema for snap
func NewExecutor(snap *report.Snapshot, opts Options) (*Executor, error) {
	schema, err := GenerateSchema(snap, opts.Limits)
	if err != nil {
		return nil, err
	}

	e := &Executor{
		schema:   schema,
		maxDepth: opts.MaxDepth,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	if e.logger == nil {
		e.logger = logging.NewNopLogger()
	}
	return e, nil
}

// Schema returns the generated schema
func (e *Executor) Schema() graphql.Schema {
	return e.schema
}

// Execute validates the query depth and runs it with variables
func (e *Executor) Execute(ctx context.Context, query string, variables map[string]any) *graphql.Result {
	start := time.Now()

	var result *graphql.Result
	if err := ValidateQueryDepth(query, e.maxDepth); err != nil {
		result = &graphql.Result{
			Errors: []gqlerrors.FormattedError{
				gqlerrors.FormatError(err),
			},
		}
	} else {
		result = graphql.Do(graphql.Params{
			Schema:         e.schema,
			RequestString:  query,
			VariableValues: variables,
			Context:        ctx,
		})
	}

	status := metrics.StatusOK
	if result.HasErrors() {
		status = metrics.StatusError
		e.logger.Warn("query failed",
			logging.Int("errors", len(result.Errors)),
			logging.String("first_error", result.Errors[0].Message))
	}
	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.RecordQuery(status, elapsed)
	}
	e.logger.Debug("query executed", logging.String("status", status), logging.Latency(elapsed))

	return result
}
