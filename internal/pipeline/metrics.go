package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ambernotes/revops-etl/internal/models"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revops_pipeline_runs_total",
		Help: "Pipeline runs by outcome.",
	}, []string{"outcome"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "revops_pipeline_run_duration_seconds",
		Help:    "Wall time of a full pipeline run.",
		Buckets: prometheus.DefBuckets,
	})

	sourceRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "revops_source_records",
		Help: "Records loaded per source on the last run.",
	}, []string{"source"})
)

func observeDataset(ds *models.Dataset) {
	sourceRecords.WithLabelValues("ads").Set(float64(len(ds.Ads)))
	sourceRecords.WithLabelValues("deals").Set(float64(len(ds.Deals)))
	sourceRecords.WithLabelValues("forms").Set(float64(len(ds.Forms)))
	sourceRecords.WithLabelValues("purchases").Set(float64(len(ds.Purchases)))
	sourceRecords.WithLabelValues("charges").Set(float64(len(ds.Charges)))
	sourceRecords.WithLabelValues("subscriptions").Set(float64(len(ds.Subscriptions)))
}
