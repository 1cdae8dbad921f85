package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

type authorSort int

const (
	sortByBetweenness authorSort = iota
	sortByCloseness
	sortByDegree
	sortByArticles
	sortByName
	sortCount
)

func (s authorSort) String() string {
	switch s {
	case sortByBetweenness:
		return "betweenness"
	case sortByCloseness:
		return "closeness"
	case sortByDegree:
		return "degree"
	case sortByArticles:
		return "articles"
	case sortByName:
		return "name"
	default:
		return "unknown"
	}
}

var authorColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Author", Width: 28},
	{Title: "Articles", Width: 8},
	{Title: "Degree", Width: 7},
	{Title: "Betweenness", Width: 12},
	{Title: "Closeness", Width: 10},
	{Title: "Community", Width: 9},
}

var paperColumns = []table.Column{
	{Title: "Row", Width: 5},
	{Title: "Title", Width: 56},
	{Title: "Year", Width: 6},
	{Title: "Cites", Width: 7},
	{Title: "Cites/yr", Width: 9},
}

var communityColumns = []table.Column{
	{Title: "ID", Width: 4},
	{Title: "Size", Width: 6},
	{Title: "Density", Width: 8},
	{Title: "Members", Width: 64},
}

// sortedAuthors orders authors by s, descending except for name. Ties
// keep snapshot order.
func sortedAuthors(authors []report.AuthorMetrics, s authorSort) []report.AuthorMetrics {
	out := append([]report.AuthorMetrics(nil), authors...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch s {
		case sortByCloseness:
			return a.Closeness > b.Closeness
		case sortByDegree:
			return a.Degree > b.Degree
		case sortByArticles:
			return a.Articles > b.Articles
		case sortByName:
			return a.Name < b.Name
		default:
			return a.Betweenness > b.Betweenness
		}
	})
	return out
}

func authorRows(authors []report.AuthorMetrics, s authorSort) []table.Row {
	sorted := sortedAuthors(authors, s)
	rows := make([]table.Row, len(sorted))
	for i, a := range sorted {
		community := "-"
		if a.Community >= 0 {
			community = fmt.Sprintf("%d", a.Community)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			a.Name,
			fmt.Sprintf("%d", a.Articles),
			fmt.Sprintf("%d", a.Degree),
			report.FormatScore(a.Betweenness),
			report.FormatScore(a.Closeness),
			community,
		}
	}
	return rows
}

// paperRows lists papers by citations, most cited first. Papers without a
// count follow in row order.
func paperRows(papers []report.Paper) []table.Row {
	sorted := append([]report.Paper(nil), papers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Cites, sorted[j].Cites
		if (a == nil) != (b == nil) {
			return a != nil
		}
		return a != nil && *a > *b
	})

	rows := make([]table.Row, len(sorted))
	for i, p := range sorted {
		rows[i] = table.Row{
			fmt.Sprintf("%d", p.Row),
			p.Title,
			optional(p.Year, "%d"),
			optional(p.Cites, "%d"),
			optional(p.CitesPerYear, "%.2f"),
		}
	}
	return rows
}

func optional[T int | float64](v *T, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func communityRows(communities []*algorithms.Community) []table.Row {
	rows := make([]table.Row, len(communities))
	for i, c := range communities {
		rows[i] = table.Row{
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.Size),
			fmt.Sprintf("%.3f", c.Density),
			strings.Join(c.Members, ", "),
		}
	}
	return rows
}
