package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot/vg"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
	"github.com/dd0wney/cluso-coauthor/pkg/logging"
	"github.com/dd0wney/cluso-coauthor/pkg/publish"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
	"github.com/dd0wney/cluso-coauthor/pkg/visualization"
)

// maxInvalidWarnings caps per-cell warnings; the rest are summarised
const maxInvalidWarnings = 20

// Chart titles
const (
	networkTitle = "Co-authorship Network with Limited Important Connections"
	densityTitle = "Density of Citations per Year"
)

// topCitedLabelRunes bounds paper titles on the top-cited chart axis
const topCitedLabelRunes = 60

// Source returns the article source selected by cfg
func (p *Pipeline) Source() bibliography.Source {
	if p.source != nil {
		return p.source
	}
	in := p.cfg.Input
	if in.Source == "postgres" {
		return bibliography.NewPostgresSource(in.Postgres.URL, in.Postgres.Query)
	}
	return bibliography.NewCSVSource(in.Path, in.DelimiterRune())
}

func (p *Pipeline) load(ctx context.Context, res *Result) error {
	src := p.Source()
	ds, err := src.Load(ctx)
	if err != nil {
		return err
	}
	res.Dataset = ds

	invalid := make(map[string]int)
	for i, v := range ds.Invalid {
		invalid[v.Column]++
		if i < maxInvalidWarnings {
			p.logger.Warn("invalid value treated as missing",
				logging.Row(v.Row), logging.Column(v.Column), logging.String("value", v.Value))
		}
	}
	if len(ds.Invalid) > maxInvalidWarnings {
		p.logger.Warn("further invalid values not shown",
			logging.Count(len(ds.Invalid)-maxInvalidWarnings))
	}

	skipped := report.CountSkipped(ds.Articles)
	p.metrics.RecordInput(len(ds.Articles), invalid, map[string]int{
		"network":            skipped.NoAuthors,
		"articles_per_year":  skipped.NoYear,
		"citations_per_year": skipped.NoCitesPerYear,
		"top_cited":          skipped.NoCites,
	})

	p.logger.Info("articles loaded",
		logging.String("source", src.Name()),
		logging.Count(len(ds.Articles)),
		logging.Int("invalid_values", len(ds.Invalid)),
		logging.String("digest", ds.Digest))
	return nil
}

func (p *Pipeline) build(_ context.Context, res *Result) error {
	res.Graph = coauthor.Build(res.Dataset.Articles)
	p.metrics.SetGraph(res.Graph.NodeCount(), res.Graph.EdgeCount())

	if res.Graph.EdgeCount() == 0 {
		p.logger.Warn("no co-authored articles; the network is empty")
	}
	p.logger.Info("graph built",
		logging.Int("authors", res.Graph.NodeCount()),
		logging.Int("collaborations", res.Graph.EdgeCount()))
	return nil
}

func (p *Pipeline) analyze(_ context.Context, res *Result) error {
	n := p.cfg.Analysis.TopN
	res.Centrality = algorithms.ComputeAllCentrality(res.Graph, n)
	res.Partition = algorithms.GreedyModularity(res.Graph)
	res.Components = algorithms.ConnectedComponents(res.Graph)
	res.Triangles = algorithms.CountTriangles(res.Graph, n)

	p.metrics.SetAnalysis(res.Partition.Count(), res.Partition.Modularity,
		res.Components.Count(), res.Triangles.GlobalCount)

	p.logger.Info("metrics computed",
		logging.Int("communities", res.Partition.Count()),
		logging.Float64("modularity", res.Partition.Modularity),
		logging.Int("components", res.Components.Count()),
		logging.Int("triangles", res.Triangles.GlobalCount))
	return nil
}

func (p *Pipeline) layout(_ context.Context, res *Result) error {
	lc := p.cfg.Layout
	layout, err := visualization.NewLayout(lc.Algorithm, &visualization.LayoutConfig{
		Seed:       lc.Seed,
		K:          lc.K,
		Iterations: lc.Iterations,
	})
	if err != nil {
		return err
	}
	res.Positions = layout.ComputeLayout(res.Graph)
	res.View = visualization.BuildNetworkView(res.Graph, res.Centrality, res.Partition, res.Positions, p.viewConfig())

	p.logger.Info("layout computed",
		logging.String("algorithm", lc.Algorithm),
		logging.Int("edges_drawn", len(res.View.Edges)),
		logging.Int("labels", len(res.View.Labels)))
	return nil
}

func (p *Pipeline) viewConfig() visualization.ViewConfig {
	a := p.cfg.Analysis
	return visualization.ViewConfig{
		HubDegree:            a.HubDegree,
		BetweennessThreshold: a.BetweennessThreshold,
		TopNeighbors:         a.TopNeighbors,
	}
}

func (p *Pipeline) chartPath(name string) string {
	return filepath.Join(p.cfg.Output.Dir, name+"."+p.cfg.Render.Format)
}

func (p *Pipeline) render(_ context.Context, res *Result) error {
	if err := os.MkdirAll(p.cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rc := p.cfg.Render
	networkSize := vg.Length(rc.NetworkSize) * vg.Inch
	width := vg.Length(rc.ChartWidth) * vg.Inch
	height := vg.Length(rc.ChartHeight) * vg.Inch
	articles := res.Dataset.Articles
	topN := p.cfg.Analysis.TopN

	path := p.chartPath("network")
	if err := visualization.RenderNetwork(res.View, visualization.ChartConfig{
		Path: path, Title: networkTitle, Width: networkSize, Height: networkSize,
	}); err != nil {
		return err
	}
	p.recordArtifact(res, ArtifactChart, path)

	years := report.ArticlesPerYear(articles)
	yearBars := make([]visualization.Bar, len(years))
	for i, y := range years {
		yearBars[i] = visualization.Bar{Label: strconv.Itoa(y.Year), Value: float64(y.Count)}
	}
	path = p.chartPath("articles_per_year")
	if err := visualization.RenderBarChart(yearBars, false, visualization.ChartConfig{
		Path:   path,
		Title:  fmt.Sprintf("Number of %s Articles per Year", rc.Topic),
		XLabel: "Year", YLabel: "Number of Articles",
		Width: width, Height: height,
	}); err != nil {
		return err
	}
	p.recordArtifact(res, ArtifactChart, path)

	density := report.CitationDensity(articles, p.cfg.Analysis.HistogramBins)
	bins := make([]visualization.HistogramBin, len(density.Bins))
	for i, b := range density.Bins {
		bins[i] = visualization.HistogramBin{Min: b.Min, Max: b.Max, Count: b.Count}
	}
	path = p.chartPath("citations_per_year")
	if err := visualization.RenderHistogram(bins, visualization.ChartConfig{
		Path:   path,
		Title:  densityTitle,
		XLabel: "Citations per Year", YLabel: "Number of Articles",
		Width: width, Height: height,
	}); err != nil {
		return err
	}
	p.recordArtifact(res, ArtifactChart, path)

	cited := report.TopCited(articles, topN)
	citedBars := make([]visualization.Bar, len(cited))
	for i, c := range cited {
		citedBars[i] = visualization.Bar{Label: visualization.Truncate(c.Title, topCitedLabelRunes), Value: float64(c.Cites)}
	}
	path = p.chartPath("top_cited")
	if err := visualization.RenderBarChart(citedBars, true, visualization.ChartConfig{
		Path:   path,
		Title:  fmt.Sprintf("Top %d Most Cited Articles in %s", topN, rc.Topic),
		XLabel: "Number of Citations", YLabel: "Article Title",
		Width: width, Height: height,
	}); err != nil {
		return err
	}
	p.recordArtifact(res, ArtifactChart, path)

	p.logger.Info("charts rendered",
		logging.Path(p.cfg.Output.Dir), logging.String("format", rc.Format))
	return nil
}

func (p *Pipeline) report(_ context.Context, res *Result) error {
	res.Report = report.Build(report.Input{
		Topic:      p.cfg.Render.Topic,
		Dataset:    res.Dataset,
		Graph:      res.Graph,
		Centrality: res.Centrality,
		Partition:  res.Partition,
		Components: res.Components,
		Triangles:  res.Triangles,
		TopN:       p.cfg.Analysis.TopN,
		Bins:       p.cfg.Analysis.HistogramBins,
	})

	report.NewPrinter(p.stdout, p.cfg.Render.ConsoleColor).Print(res.Report)
	return nil
}

func (p *Pipeline) export(_ context.Context, res *Result) error {
	if err := os.MkdirAll(p.cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	res.Snapshot = report.NewSnapshot(report.SnapshotInput{
		RunID:      res.RunID,
		Report:     res.Report,
		Dataset:    res.Dataset,
		Graph:      res.Graph,
		Centrality: res.Centrality,
		Partition:  res.Partition,
		Triangles:  res.Triangles,
		Positions:  res.Positions,
	})

	path, err := report.WriteSnapshot(filepath.Join(p.cfg.Output.Dir, "snapshot.json"), res.Snapshot, p.cfg.Output.Compress)
	if err != nil {
		return err
	}
	p.recordArtifact(res, ArtifactSnapshot, path)
	p.logger.Info("snapshot written", logging.Path(path), logging.Bool("compressed", p.cfg.Output.Compress))
	return nil
}

func (p *Pipeline) publish(ctx context.Context, res *Result) error {
	s3cfg := p.cfg.Publish.S3

	client := p.uploader
	if client == nil {
		c, err := publish.NewS3Client(ctx, s3cfg)
		if err != nil {
			return err
		}
		client = c
	}

	publisher, err := publish.New(client, s3cfg.Bucket, s3cfg.Prefix, p.logger)
	if err != nil {
		return err
	}

	objects, err := publisher.Upload(ctx, res.RunID.String(), res.Artifacts)
	res.Published = objects
	return err
}
