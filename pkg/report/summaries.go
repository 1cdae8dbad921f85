// Package report derives the tabular summaries of a run: per-year article
// counts, the citation-density histogram, the most prolific authors and
// the most cited papers. It also renders them to the console and exports
// the run as a snapshot document.
package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
)

// YearCount is the number of articles published in one year
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Bin is one equal-width histogram bin, [Min, Max)
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Histogram is the distribution of citations per year over all articles
// that have a value. The last bin includes its upper edge.
type Histogram struct {
	Bins   []Bin `json:"bins"`
	Values int   `json:"values"`
}

// AuthorCount is the number of articles an author appears on
type AuthorCount struct {
	Name     string `json:"name"`
	Articles int    `json:"articles"`
}

// CitedPaper is one entry of the most-cited list
type CitedPaper struct {
	Row   int    `json:"row"`
	Title string `json:"title"`
	Cites int    `json:"cites"`
}

// Skipped counts articles left out of each derived view
type Skipped struct {
	NoAuthors      int `json:"no_authors"`
	NoYear         int `json:"no_year"`
	NoCitesPerYear int `json:"no_cites_per_year"`
	NoCites        int `json:"no_cites"`
}

// CountSkipped tallies, per view, the articles missing that view's field
func CountSkipped(articles []bibliography.Article) Skipped {
	var s Skipped
	for _, a := range articles {
		if !a.HasAuthors() {
			s.NoAuthors++
		}
		if a.Year == nil {
			s.NoYear++
		}
		if a.CitesPerYear == nil {
			s.NoCitesPerYear++
		}
		if a.Cites == nil {
			s.NoCites++
		}
	}
	return s
}

// ArticlesPerYear counts articles by year, ascending. Articles without a
// year are skipped.
func ArticlesPerYear(articles []bibliography.Article) []YearCount {
	counts := make(map[int]int)
	for _, a := range articles {
		if a.Year == nil {
			continue
		}
		counts[*a.Year]++
	}

	out := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		out = append(out, YearCount{Year: year, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CitationDensity bins CitesPerYear into equal-width bins spanning the
// observed range. When every value is equal the range is widened by 0.5
// on both sides. No values gives a histogram without bins.
func CitationDensity(articles []bibliography.Article, bins int) Histogram {
	values := make([]float64, 0, len(articles))
	for _, a := range articles {
		if a.CitesPerYear == nil || math.IsNaN(*a.CitesPerYear) || math.IsInf(*a.CitesPerYear, 0) {
			continue
		}
		values = append(values, *a.CitesPerYear)
	}
	if len(values) == 0 || bins < 1 {
		return Histogram{}
	}
	sort.Float64s(values)

	lo, hi := values[0], values[len(values)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[bins] = hi
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	// stat.Histogram bins are half-open; nudge the top edge so the maximum counts
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, values, nil)

	h := Histogram{Bins: make([]Bin, bins), Values: len(values)}
	for i := range h.Bins {
		h.Bins[i] = Bin{Min: edges[i], Max: edges[i+1], Count: int(counts[i])}
	}
	return h
}

// TopAuthorsByArticles returns the n authors appearing on the most
// articles. Every author token counts, so a name repeated within one
// article counts each time. Ties keep first appearance order.
func TopAuthorsByArticles(articles []bibliography.Article, n int) []AuthorCount {
	if n <= 0 {
		return nil
	}

	index := make(map[string]int)
	var counts []AuthorCount
	for _, a := range articles {
		for _, name := range a.Authors {
			i, ok := index[name]
			if !ok {
				i = len(counts)
				index[name] = i
				counts = append(counts, AuthorCount{Name: name})
			}
			counts[i].Articles++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Articles > counts[j].Articles
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// TopCited returns the n articles with the most citations. Ties keep row
// order; articles without a citation count are excluded.
func TopCited(articles []bibliography.Article, n int) []CitedPaper {
	if n <= 0 {
		return nil
	}

	papers := make([]CitedPaper, 0, len(articles))
	for _, a := range articles {
		if a.Cites == nil {
			continue
		}
		papers = append(papers, CitedPaper{Row: a.Row, Title: a.Title, Cites: *a.Cites})
	}

	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Cites > papers[j].Cites
	})
	if len(papers) > n {
		papers = papers[:n]
	}
	return papers
}
