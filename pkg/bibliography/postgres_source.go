package bibliography

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads articles with a query returning, in order:
// authors text, year int, cites_per_year float8, title text, cites int.
// Any column may be NULL.
type PostgresSource struct {
	URL   string
	Query string
}

// NewPostgresSource creates a Postgres source
func NewPostgresSource(url, query string) *PostgresSource {
	return &PostgresSource{URL: url, Query: query}
}

// Name returns a description without credentials
func (s *PostgresSource) Name() string {
	config, err := pgxpool.ParseConfig(s.URL)
	if err != nil {
		return "postgres"
	}
	return fmt.Sprintf("postgres://%s:%d/%s", config.ConnConfig.Host, config.ConnConfig.Port, config.ConnConfig.Database)
}

// Load runs the query and converts every row
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	name := s.Name()

	config, err := pgxpool.ParseConfig(s.URL)
	if err != nil {
		return nil, &LoadError{Op: "connect", Source: name, Cause: fmt.Errorf("failed to parse database URL: %w", err)}
	}
	// A single sequential query needs no more than one connection
	config.MaxConns = 1
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &LoadError{Op: "connect", Source: name, Cause: err}
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, &LoadError{Op: "connect", Source: name, Cause: fmt.Errorf("%w: %w", ErrInputNotFound, err)}
	}

	rows, err := pool.Query(ctx, s.Query)
	if err != nil {
		return nil, &LoadError{Op: "query", Source: name, Cause: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	if len(fields) < len(RequiredColumns) {
		return nil, missingColumn(name, RequiredColumns[len(fields)])
	}

	ds := &Dataset{Source: name}
	row := 0
	for rows.Next() {
		row++
		var (
			authors      *string
			year         *int32
			citesPerYear *float64
			title        *string
			cites        *int32
		)
		if err := rows.Scan(&authors, &year, &citesPerYear, &title, &cites); err != nil {
			return nil, &LoadError{Op: "scan", Source: name, Row: row, Cause: fmt.Errorf("%w: %w", ErrMalformed, err)}
		}
		ds.Articles = append(ds.Articles, NewArticle(row, deref(authors), intPtr(year), citesPerYear, deref(title), intPtr(cites)))
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Op: "query", Source: name, Row: row, Cause: err}
	}

	return ds, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
