package influence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered on the default prometheus registry and can be
// exposed with promhttp.Handler().
var (
	simulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "influence_simulations_total",
			Help: "Total number of diffusion simulations run",
		},
		[]string{"model"},
	)

	candidateEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "influence_candidate_evaluations_total",
			Help: "Total number of candidate spread evaluations during greedy selection",
		},
		[]string{"model"},
	)

	greedyRoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "influence_greedy_rounds_total",
			Help: "Total number of completed greedy selection rounds",
		},
		[]string{"model"},
	)

	selectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "influence_selection_duration_seconds",
			Help:    "Duration of complete seed selections in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"model"},
	)
)
