package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netgauge/netgauge/pkg/assess"
)

var (
	assessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgauge_assessments_total",
			Help: "Completed assessments by terminal outcome",
		},
		[]string{"outcome"},
	)

	assessmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netgauge_assessment_failures_total",
			Help: "Failed assessments by pipeline stage",
		},
		[]string{"stage"},
	)

	assessmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netgauge_assessment_duration_seconds",
			Help:    "Wall-clock duration of assessment runs",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

func observeRun(outcome assess.Outcome, elapsed time.Duration) {
	assessmentsTotal.WithLabelValues(string(outcome)).Inc()
	assessmentDuration.Observe(elapsed.Seconds())
}

func observeFailure(err error) {
	assessmentFailures.WithLabelValues(failureStage(err)).Inc()
}
