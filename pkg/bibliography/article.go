// Package bibliography loads citation records (one row per article) from a
// delimited export such as a Publish or Perish CSV, or from Postgres.
package bibliography

import (
	"context"
	"strings"
)

// Column names every source must provide
const (
	ColumnAuthors      = "Authors"
	ColumnYear         = "Year"
	ColumnCitesPerYear = "CitesPerYear"
	ColumnTitle        = "Title"
	ColumnCites        = "Cites"
)

// RequiredColumns lists the columns in the order they are checked
var RequiredColumns = []string{ColumnAuthors, ColumnYear, ColumnCitesPerYear, ColumnTitle, ColumnCites}

// Article is one input row. Nil pointers mark missing values.
type Article struct {
	// Row is the 1-based data row number in source order
	Row          int
	RawAuthors   string
	Authors      []string
	Year         *int
	CitesPerYear *float64
	Title        string
	Cites        *int
}

// HasAuthors reports whether the row contributes to the co-authorship views
func (a Article) HasAuthors() bool {
	return len(a.Authors) > 0
}

// NewArticle builds an Article, splitting rawAuthors into trimmed names
func NewArticle(row int, rawAuthors string, year *int, citesPerYear *float64, title string, cites *int) Article {
	return Article{
		Row:          row,
		RawAuthors:   rawAuthors,
		Authors:      SplitAuthors(rawAuthors),
		Year:         year,
		CitesPerYear: citesPerYear,
		Title:        title,
		Cites:        cites,
	}
}

// SplitAuthors splits a comma separated author list and trims each name.
// Empty names (from "A, , B" or a trailing comma) are dropped; order and
// repeats are preserved.
func SplitAuthors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// InvalidValue records a cell that was present but could not be parsed.
// The field is treated as missing for that row.
type InvalidValue struct {
	Row    int
	Column string
	Value  string
}

// Dataset is the result of loading a source
type Dataset struct {
	Source   string
	Articles []Article
	Invalid  []InvalidValue
	// Digest is a BLAKE2b-256 fingerprint of the raw input, when the
	// source has one
	Digest string
}

// Source produces a Dataset
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	// Name describes the source for logs, e.g. the file path
	Name() string
}
