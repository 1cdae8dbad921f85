package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-coauthor/pkg/bibliography"
	"github.com/dd0wney/cluso-coauthor/pkg/config"
	"github.com/dd0wney/cluso-coauthor/pkg/logging"
	"github.com/dd0wney/cluso-coauthor/pkg/metrics"
	"github.com/dd0wney/cluso-coauthor/pkg/report"
)

const citesCSV = `Authors,Year,CitesPerYear,Title,Cites
"A, B",2019,2.5,X,10
"B, C",2020,1.0,Y,5
"C, D",abc,,Z,
E,2021,0.5,Solo,1
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "cites.csv")
	require.NoError(t, os.WriteFile(input, []byte(citesCSV), 0644))

	cfg := config.Default()
	cfg.Input.Path = input
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Render.ConsoleColor = false
	cfg.Layout.Iterations = 10
	return cfg
}

type fakeUploader struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeUploader) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.Copy(io.Discard, in.Body); err != nil {
		return nil, err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	var stdout, logs bytes.Buffer
	logger := logging.NewJSONLogger(&logs, logging.ParseLevel("debug"))

	res, err := Run(context.Background(), cfg, logger, metrics.NewRegistry(), WithStdout(&stdout))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Graph.NodeCount())
	assert.Equal(t, 3, res.Graph.EdgeCount())
	require.Len(t, res.Dataset.Invalid, 1)
	assert.Equal(t, "Year", res.Dataset.Invalid[0].Column)

	for _, name := range []string{"network", "articles_per_year", "citations_per_year", "top_cited"} {
		assert.FileExists(t, filepath.Join(cfg.Output.Dir, name+".png"))
	}
	assert.Len(t, res.Artifacts, 5)
	assert.Len(t, res.Positions, 4)

	out := stdout.String()
	assert.Contains(t, out, "Top 5 authors by betweenness centrality:")
	assert.Contains(t, out, "Top 5 most cited papers:")

	snap, err := report.ReadSnapshot(SnapshotPath(cfg))
	require.NoError(t, err)
	assert.Len(t, snap.Authors, 4)
	assert.Equal(t, res.RunID.String(), snap.RunID)

	require.NotEmpty(t, res.MetricsFile)
	prom, err := os.ReadFile(res.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "coauthor_graph_authors 4")
	assert.Contains(t, string(prom), "coauthor_last_run_success 1")

	assert.Contains(t, logs.String(), "invalid value treated as missing")
	assert.Contains(t, logs.String(), res.RunID.String())
}

func TestRunCompressedSnapshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.Enabled = false
	cfg.Output.Compress = true

	res, err := Run(context.Background(), cfg, nil, nil, WithStdout(io.Discard))
	require.NoError(t, err)

	require.Len(t, res.Artifacts, 1)
	assert.True(t, strings.HasSuffix(res.Artifacts[0], report.CompressedSuffix))
	_, err = report.ReadSnapshot(SnapshotPath(cfg))
	assert.NoError(t, err)
}

func TestRunPublishes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Publish.S3.Bucket = "charts"
	cfg.Publish.S3.Prefix = "coauthor"
	uploader := &fakeUploader{}

	res, err := Run(context.Background(), cfg, nil, nil, WithStdout(io.Discard), WithUploader(uploader))
	require.NoError(t, err)

	require.Len(t, res.Published, 5)
	assert.Len(t, uploader.keys, 5)
	for _, key := range uploader.keys {
		assert.True(t, strings.HasPrefix(key, "coauthor/"+res.RunID.String()+"/"), key)
	}
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.Path = filepath.Join(t.TempDir(), "missing.csv")

	res, err := Run(context.Background(), cfg, nil, nil, WithStdout(io.Discard))
	require.Error(t, err)
	assert.True(t, errors.Is(err, bibliography.ErrInputNotFound))
	assert.True(t, strings.HasPrefix(err.Error(), StageLoad+": "))
	assert.Empty(t, res.Artifacts)

	prom, err := os.ReadFile(filepath.Join(cfg.Output.Dir, cfg.Output.MetricsFile))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "coauthor_last_run_success 0")
	assert.Contains(t, string(prom), `coauthor_stages_total{stage="load",status="error"} 1`)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, nil, nil, WithStdout(io.Discard))
	assert.ErrorIs(t, err, context.Canceled)
}

type staticSource struct {
	articles []bibliography.Article
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) (*bibliography.Dataset, error) {
	return &bibliography.Dataset{Source: "static", Articles: s.articles}, nil
}

func TestRunWithSourceWithoutEdges(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Snapshot = false
	cfg.Output.MetricsFile = ""
	src := staticSource{articles: []bibliography.Article{
		{Row: 1, Authors: []string{"Solo"}, Title: "Alone"},
	}}

	res, err := Run(context.Background(), cfg, nil, nil, WithStdout(io.Discard), WithSource(src))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Graph.EdgeCount())
	assert.Nil(t, res.Snapshot)
	assert.Empty(t, res.MetricsFile)
	assert.Len(t, res.Artifacts, 4)
}

func TestUnknownLayoutFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Layout.Algorithm = "kamada-kawai"

	_, err := Run(context.Background(), cfg, nil, nil, WithStdout(io.Discard))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), StageLayout+": "))
}
