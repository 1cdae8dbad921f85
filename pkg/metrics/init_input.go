package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInputMetrics() {
	r.ArticlesLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "coauthor_articles_loaded",
			Help: "Number of articles read from the input source",
		},
	)

	r.InvalidValuesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "coauthor_invalid_values_total",
			Help: "Cells that were present but could not be parsed",
		},
		[]string{"column"},
	)

	r.ArticlesSkipped = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coauthor_articles_skipped",
			Help: "Articles left out of a derived view for lack of its field",
		},
		[]string{"view"},
	)
}
