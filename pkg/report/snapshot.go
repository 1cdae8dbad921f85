package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
	"github.com/dd0wney/cluso-coauthor/pkg/visualization"
)

// CompressedSuffix is appended to snapshot files written with snappy
const CompressedSuffix = ".sz"

// ErrSnapshotVersion is returned for documents written by an incompatible version
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// SnapshotVersion is the current document layout
const SnapshotVersion = 1

// AuthorMetrics is every per-author value computed by a run
type AuthorMetrics struct {
	Name        string  `json:"name"`
	Articles    int     `json:"articles"`
	Degree      int     `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Clustering  float64 `json:"clustering"`
	Community   int     `json:"community"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Paper is one input article as exported
type Paper struct {
	Row          int      `json:"row"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Year         *int     `json:"year,omitempty"`
	CitesPerYear *float64 `json:"cites_per_year,omitempty"`
	Cites        *int     `json:"cites,omitempty"`
}

// Snapshot is the complete, self-contained result of one run
type Snapshot struct {
	Version     int                     `json:"version"`
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Source      string                  `json:"source"`
	Digest      string                  `json:"digest,omitempty"`
	Report      *Report                 `json:"report"`
	Authors     []AuthorMetrics         `json:"authors"`
	Edges       [][2]string             `json:"edges"`
	Communities []*algorithms.Community `json:"communities"`
	Papers      []Paper                 `json:"papers"`
}

// SnapshotInput gathers what a snapshot is assembled from
type SnapshotInput struct {
	RunID      uuid.UUID
	Report     *Report
	Dataset    *bibliography.Dataset
	Graph      *coauthor.Graph
	Centrality *algorithms.CentralityResult
	Partition  *algorithms.Partition
	Triangles  *algorithms.TriangleCountResult
	Positions  map[string]visualization.Position
}

// NewSnapshot assembles the snapshot document. Authors appear in graph
// insertion order.
func NewSnapshot(in SnapshotInput) *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		RunID:       in.RunID.String(),
		GeneratedAt: time.Now().UTC(),
		Source:      in.Dataset.Source,
		Digest:      in.Dataset.Digest,
		Report:      in.Report,
	}

	articleCounts := make(map[string]int)
	for _, a := range in.Dataset.Articles {
		for _, name := range a.Authors {
			articleCounts[name]++
		}
		s.Papers = append(s.Papers, Paper{
			Row:          a.Row,
			Title:        a.Title,
			Authors:      a.Authors,
			Year:         a.Year,
			CitesPerYear: a.CitesPerYear,
			Cites:        a.Cites,
		})
	}

	for _, name := range in.Graph.Nodes() {
		m := AuthorMetrics{
			Name:      name,
			Articles:  articleCounts[name],
			Degree:    in.Graph.Degree(name),
			Community: -1,
		}
		if in.Centrality != nil {
			m.Betweenness = in.Centrality.Betweenness[name]
			m.Closeness = in.Centrality.Closeness[name]
		}
		if in.Partition != nil {
			m.Community = in.Partition.Of(name)
		}
		if in.Triangles != nil {
			m.Clustering = in.Triangles.ClusteringCoefficients[name]
		}
		if pos, ok := in.Positions[name]; ok {
			m.X, m.Y = pos.X, pos.Y
		}
		s.Authors = append(s.Authors, m)
	}

	for _, e := range in.Graph.Edges() {
		s.Edges = append(s.Edges, [2]string{e.A, e.B})
	}
	if in.Partition != nil {
		s.Communities = in.Partition.Communities
	}

	return s
}

// WriteSnapshot encodes s as JSON to path, snappy-compressed when
// compress is set, and returns the path written. Compressed files get
// CompressedSuffix appended.
func WriteSnapshot(path string, s *Snapshot, compress bool) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if compress {
		data = snappy.Encode(nil, data)
		if !strings.HasSuffix(path, CompressedSuffix) {
			path += CompressedSuffix
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot. Files ending in
// CompressedSuffix are decompressed first.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if strings.HasSuffix(path, CompressedSuffix) {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}
	return &s, nil
}

// Author returns the metrics of name
func (s *Snapshot) Author(name string) (AuthorMetrics, bool) {
	for _, a := range s.Authors {
		if a.Name == name {
			return a, true
		}
	}
	return AuthorMetrics{}, false
}

// Coauthors returns the names linked to name, in edge order
func (s *Snapshot) Coauthors(name string) []string {
	var out []string
	for _, e := range s.Edges {
		switch name {
		case e[0]:
			out = append(out, e[1])
		case e[1]:
			out = append(out, e[0])
		}
	}
	return out
}
