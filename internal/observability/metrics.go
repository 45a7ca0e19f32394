package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bbq_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for a scrape run.
type Metrics struct {
	PipelineRunning prometheus.Gauge

	// Source metrics.
	SourcesFetched      *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration       prometheus.Histogram
	CandidatesExtracted *prometheus.CounterVec // labels: profile={structural,generic}

	// Table metrics, set once per run.
	RecordsNormalized prometheus.Gauge
	RecordsGeocoded   prometheus.Gauge
	CitiesMissing     prometheus.Gauge
	RecordsLoaded     *prometheus.CounterVec // labels: sink={csv,kafka}

	// Run metrics.
	RunDuration      prometheus.Histogram
	LastRunSuccess   prometheus.Gauge
	LastRunTimestamp prometheus.Gauge

	// Remote geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry creates all run metrics and registers them with reg.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while a scrape run is in progress, 0 otherwise.",
		}),
		SourcesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_fetched_total",
			Help:      "Ranked-list pages fetched, by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single page fetch.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CandidatesExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_extracted_total",
			Help:      "Raw restaurant candidates extracted, by format profile.",
		}, []string{"profile"}),
		RecordsNormalized: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_normalized",
			Help:      "Records in the table produced by the last run.",
		}),
		RecordsGeocoded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_geocoded",
			Help:      "Records that received coordinates in the last run.",
		}),
		CitiesMissing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cities_missing",
			Help:      "Distinct cities without coordinates in the last run.",
		}),
		RecordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Records written, by sink.",
		}, []string{"sink"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-extract-normalize-geocode-load run.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run produced a table, 0 otherwise.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Remote geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Remote geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when remote geocoding is enabled, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		m.PipelineRunning,
		m.SourcesFetched,
		m.FetchDuration,
		m.CandidatesExtracted,
		m.RecordsNormalized,
		m.RecordsGeocoded,
		m.CitiesMissing,
		m.RecordsLoaded,
		m.RunDuration,
		m.LastRunSuccess,
		m.LastRunTimestamp,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for collection by a node exporter textfile collector.
// The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
