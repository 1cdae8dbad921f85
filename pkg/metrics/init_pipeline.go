package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coauthor_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"},
	)

	r.StagesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coauthor_stages_total",
			Help: "Pipeline stages run, by outcome",
		},
		[]string{"stage", "status"},
	)

	r.ArtifactsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coauthor_artifacts_total",
			Help: "Artifacts written, by kind",
		},
		[]string{"kind"},
	)

	r.ArtifactBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coauthor_artifact_bytes_total",
			Help: "Bytes of artifacts written, by kind",
		},
		[]string{"kind"},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
	)

	r.LastRunSuccess = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_last_run_success",
			Help: "Whether the last run completed (1) or failed (0)",
		},
	)
}
