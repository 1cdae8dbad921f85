// Package graphql exposes a run snapshot through a read-only GraphQL
// schema: the summary, per-author metrics with their co-authors, papers,
// communities, the per-year and citation-density series, and traversals
// of the co-authorship graph (paths, neighbourhoods, suggested
// collaborators).
package graphql

import (
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

// snapshotIndex resolves authors by name and their co-authors without
// rescanning the snapshot per field. graph is rebuilt from the snapshot
// edges for traversals.
type snapshotIndex struct {
	snap      *report.Snapshot
	byName    map[string]int
	coauthors map[string][]string
	graph     *coauthor.Graph
}

func newSnapshotIndex(snap *report.Snapshot) *snapshotIndex {
	idx := &snapshotIndex{
		snap:      snap,
		byName:    make(map[string]int, len(snap.Authors)),
		coauthors: make(map[string][]string, len(snap.Authors)),
		graph:     coauthor.New(),
	}
	for i, a := range snap.Authors {
		idx.byName[a.Name] = i
	}
	for _, e := range snap.Edges {
		idx.coauthors[e[0]] = append(idx.coauthors[e[0]], e[1])
		idx.coauthors[e[1]] = append(idx.coauthors[e[1]], e[0])
		idx.graph.AddEdge(e[0], e[1])
	}
	return idx
}

func (idx *snapshotIndex) author(name string) (report.AuthorMetrics, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return report.AuthorMetrics{}, false
	}
	return idx.snap.Authors[i], true
}

// authors resolves names, skipping any the snapshot does not list
func (idx *snapshotIndex) authors(names []string) []report.AuthorMetrics {
	out := make([]report.AuthorMetrics, 0, len(names))
	for _, n := range names {
		if a, ok := idx.author(n); ok {
			out = append(out, a)
		}
	}
	return out
}

// coauthorsOf returns the neighbours of name in edge order
func (idx *snapshotIndex) coauthorsOf(name string) []report.AuthorMetrics {
	return idx.authors(idx.coauthors[name])
}

// papersOf returns the papers name appears on, in row order
func (idx *snapshotIndex) papersOf(name string) []report.Paper {
	var out []report.Paper
	for _, p := range idx.snap.Papers {
		for _, a := range p.Authors {
			if a == name {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// communityMembers returns the authors of community id
func (idx *snapshotIndex) communityMembers(id int) []report.AuthorMetrics {
	for _, c := range idx.snap.Communities {
		if c.ID != id {
			continue
		}
		return idx.authors(c.Members)
	}
	return nil
}
