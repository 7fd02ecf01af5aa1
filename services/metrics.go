package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_dataset_loads_total",
			Help: "Total number of base dataset loads by result",
		},
		[]string{"result"}, // "ok", "error"
	)

	datasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_dataset_records",
			Help: "Number of records in the cached base dataset",
		},
	)

	insightBuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_insight_builds_total",
			Help: "Total number of insight reports computed",
		},
	)

	insightBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_insight_build_duration_seconds",
			Help:    "Time to filter and aggregate one insight report",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func observeLoad(ok bool) {
	if ok {
		datasetLoads.WithLabelValues("ok").Inc()
		return
	}
	datasetLoads.WithLabelValues("error").Inc()
}
