// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generateRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datasynth_generate_requests_total",
			Help: "Total number of dataset generations by the path that produced the rows.",
		},
		[]string{"source"},
	)
	generateRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datasynth_generate_rows_total",
			Help: "Total number of rows produced by the path that produced them.",
		},
		[]string{"source"},
	)
	llmFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "datasynth_llm_failures_total",
			Help: "Total number of model calls whose output was discarded for the fallback.",
		},
	)
	generateLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "datasynth_generate_latency_ms",
			Help:    "End-to-end generation latency in milliseconds, including any fallback.",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
	)
	tempFilesSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "datasynth_temp_files_swept_total",
			Help: "Total number of orphaned temporary CSV files removed by the sweeper.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		generateRequestsTotal,
		generateRowsTotal,
		llmFailuresTotal,
		generateLatencyMs,
		tempFilesSweptTotal,
	)
}

func ObserveGeneration(source string, rows int, elapsed time.Duration) {
	generateRequestsTotal.WithLabelValues(source).Inc()
	generateRowsTotal.WithLabelValues(source).Add(float64(rows))
	generateLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func IncLLMFailure() {
	llmFailuresTotal.Inc()
}

func AddTempFilesSwept(n int) {
	if n <= 0 {
		return
	}
	tempFilesSweptTotal.Add(float64(n))
}
