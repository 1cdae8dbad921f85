// Package pipeline runs one analysis end to end: load the articles, build
// the co-authorship graph, compute its metrics, lay it out, render the
// charts, print the report, export the snapshot and optionally publish
// the artifacts.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-coauthor/pkg/algorithms"
	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
	"github.com/dd0wney/cluso-coauthor/pkg/coauthor"
	"github.com/dd0wney/cluso-coauthor/pkg/config"
	"github.com/dd0wney/cluso-coauthor/pkg/logging"
	"github.com/dd0wney/cluso-coauthor/pkg/metrics"
	"github.com/dd0wney/cluso-coauthor/pkg/publish"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
	"github.com/dd0wney/cluso-coauthor/pkg/visualization"
)

// Stage names, used in logs and as the stage metric label
const (
	StageLoad    = "load"
	StageBuild   = "build"
	StageAnalyze = "analyze"
	StageLayout  = "layout"
	StageRender  = "render"
	StageReport  = "report"
	StageExport  = "export"
	StagePublish = "publish"
)

// Artifact kinds, used as the artifact metric label
const (
	ArtifactChart    = "chart"
	ArtifactSnapshot = "snapshot"
)

// Result holds everything a run produced
type Result struct {
	RunID      uuid.UUID
	Dataset    *bibliography.Dataset
	Graph      *coauthor.Graph
	Centrality *algorithms.CentralityResult
	Partition  *algorithms.Partition
	Components *algorithms.Partition
	Triangles  *algorithms.TriangleCountResult
	Positions  map[string]visualization.Position
	View       *visualization.NetworkView
	Report     *report.Report
	Snapshot   *report.Snapshot
	// Artifacts lists the files written, in creation order
	Artifacts   []string
	Published   []publish.Object
	MetricsFile string
}

// Pipeline runs the stages of one analysis
type Pipeline struct {
	cfg      *config.Config
	logger   logging.Logger
	metrics  *metrics.Registry
	stdout   io.Writer
	source   bibliography.Source
	uploader publish.ObjectPutter
}

// Option customises a Pipeline
type Option func(*Pipeline)

// WithSource replaces the source selected by the configuration
func WithSource(src bibliography.Source) Option {
	return func(p *Pipeline) { p.source = src }
}

// WithStdout sets where the console report is printed
func WithStdout(w io.Writer) Option {
	return func(p *Pipeline) { p.stdout = w }
}

// WithUploader replaces the S3 client used for publishing
func WithUploader(u publish.ObjectPutter) Option {
	return func(p *Pipeline) { p.uploader = u }
}

// New creates a pipeline. A nil logger discards logs and a nil registry
// uses a fresh one.
func New(cfg *config.Config, logger logging.Logger, registry *metrics.Registry, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	p := &Pipeline{
		cfg:     cfg,
		logger:  logger,
		metrics: registry,
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes a pipeline built from its arguments
func Run(ctx context.Context, cfg *config.Config, logger logging.Logger, registry *metrics.Registry, opts ...Option) (*Result, error) {
	return New(cfg, logger, registry, opts...).Run(ctx)
}

// SnapshotPath returns where a run with cfg writes its snapshot
func SnapshotPath(cfg *config.Config) string {
	path := filepath.Join(cfg.Output.Dir, "snapshot.json")
	if cfg.Output.Compress {
		path += report.CompressedSuffix
	}
	return path
}

// stage runs fn, logging and recording its duration and outcome
func (p *Pipeline) stage(name string, fn func() error) error {
	timer := logging.StartTimer(p.logger, "stage complete", logging.Stage(name))
	p.logger.Debug("stage started", logging.Stage(name))

	err := fn()

	var elapsed time.Duration
	if err != nil {
		elapsed = timer.EndError(err)
	} else {
		elapsed = timer.End()
	}
	p.metrics.RecordStage(name, elapsed, err)

	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Run executes every stage in order and stops at the first failure. The
// metrics textfile is written whether or not the run succeeds.
func (p *Pipeline) Run(ctx context.Context) (res *Result, err error) {
	res = &Result{RunID: uuid.New()}
	p.logger = p.logger.With(logging.RunID(res.RunID.String()))
	p.logger.Info("run started", logging.String("source", p.cfg.Input.Source))

	defer func() {
		p.metrics.RecordRun(err == nil)
		if path, werr := p.writeMetrics(); werr != nil {
			p.logger.Warn("failed to write metrics", logging.Error(werr))
		} else if path != "" {
			res.MetricsFile = path
		}
		if err != nil {
			p.logger.Error("run failed", logging.Error(err))
		}
	}()

	steps := []struct {
		name string
		fn   func(context.Context, *Result) error
		skip bool
	}{
		{StageLoad, p.load, false},
		{StageBuild, p.build, false},
		{StageAnalyze, p.analyze, false},
		{StageLayout, p.layout, false},
		{StageRender, p.render, !p.cfg.Render.Enabled},
		{StageReport, p.report, false},
		{StageExport, p.export, !p.cfg.Output.Snapshot},
		{StagePublish, p.publish, p.cfg.Publish.S3.Bucket == ""},
	}

	for _, step := range steps {
		if step.skip {
			p.logger.Debug("stage skipped", logging.Stage(step.name))
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := p.stage(step.name, func() error { return step.fn(ctx, res) }); err != nil {
			return res, err
		}
	}

	p.logger.Info("run finished",
		logging.Int("authors", res.Graph.NodeCount()),
		logging.Int("collaborations", res.Graph.EdgeCount()),
		logging.Count(len(res.Artifacts)))
	return res, nil
}

func (p *Pipeline) writeMetrics() (string, error) {
	if p.cfg.Output.MetricsFile == "" {
		return "", nil
	}
	if err := os.MkdirAll(p.cfg.Output.Dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(p.cfg.Output.Dir, p.cfg.Output.MetricsFile)
	return path, p.metrics.WriteTextfile(path)
}

// recordArtifact notes a written file in the result and the metrics
func (p *Pipeline) recordArtifact(res *Result, kind, path string) {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	res.Artifacts = append(res.Artifacts, path)
	p.metrics.RecordArtifact(kind, size)
	p.logger.Debug("artifact written", logging.Path(path), logging.String("kind", kind))
}
