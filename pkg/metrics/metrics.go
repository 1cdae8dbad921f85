package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage outcomes used as the status label
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RecordStage records one pipeline stage with its duration and outcome
func (r *Registry) RecordStage(stage string, duration time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	r.StagesTotal.WithLabelValues(stage, status).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordInput records the size of a loaded dataset. invalid counts
// unparseable cells per column; skipped counts articles missing each
// view's field.
func (r *Registry) RecordInput(articles int, invalid map[string]int, skipped map[string]int) {
	r.ArticlesLoaded.Set(float64(articles))
	for column, n := range invalid {
		r.InvalidValuesTotal.WithLabelValues(column).Add(float64(n))
	}
	for view, n := range skipped {
		r.ArticlesSkipped.WithLabelValues(view).Set(float64(n))
	}
}

// SetGraph records the size of the co-authorship graph
func (r *Registry) SetGraph(authors, collaborations int) {
	r.GraphAuthors.Set(float64(authors))
	r.GraphCollaborations.Set(float64(collaborations))
}

// SetAnalysis records the structural results of the analysis stage
func (r *Registry) SetAnalysis(communities int, modularity float64, components, triangles int) {
	r.GraphCommunities.Set(float64(communities))
	r.GraphModularity.Set(modularity)
	r.GraphComponents.Set(float64(components))
	r.GraphTriangles.Set(float64(triangles))
}

// RecordArtifact records a written artifact of the given kind
func (r *Registry) RecordArtifact(kind string, bytes int64) {
	r.ArtifactsTotal.WithLabelValues(kind).Inc()
	if bytes > 0 {
		r.ArtifactBytesTotal.WithLabelValues(kind).Add(float64(bytes))
	}
}

// RecordQuery records a snapshot query execution
func (r *Registry) RecordQuery(status string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(status).Inc()
	r.QueryDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordRun marks the end of a run
func (r *Registry) RecordRun(success bool) {
	r.LastRunTimestamp.SetToCurrentTime()
	if success {
		r.LastRunSuccess.Set(1)
	} else {
		r.LastRunSuccess.Set(0)
	}
}

// UpdateSystemMetrics samples uptime, goroutines and memory
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteTextfile writes every metric to path in the text exposition format,
// for collection by the node exporter textfile collector. The file is
// replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpdateSystemMetrics()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
