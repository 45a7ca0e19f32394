package observability

import (
	"log/slog"
	"time"
)

// Stage names one step of a scrape run.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
	StageGeocode   Stage = "geocode"
	StageLoad      Stage = "load"
	StageRun       Stage = "run"
)

// Event reports the outcome of one stage. Fields that do not apply to a
// stage are left zero.
type Event struct {
	Stage   Stage
	Year    string
	URL     string
	Profile string
	Sink    string

	// Count is the stage output size: candidates, records, geocoded records
	// or records loaded.
	Count int
	// Total is the stage input size where it differs from Count.
	Total int
	// Unique and Cities summarize the normalized table.
	Unique int
	Cities int
	// Missing lists cities the geocoder could not resolve.
	Missing []string

	Duration time.Duration
	Err      error
}

// RunObserver turns run events into structured log lines and metric updates.
type RunObserver struct {
	logger  *slog.Logger
	metrics *Metrics
}

// NewRunObserver creates an observer writing to logger and metrics.
func NewRunObserver(logger *slog.Logger, metrics *Metrics) *RunObserver {
	return &RunObserver{logger: logger, metrics: metrics}
}

// Observe records one event.
func (o *RunObserver) Observe(e Event) {
	switch e.Stage {
	case StageFetch:
		o.metrics.FetchDuration.Observe(e.Duration.Seconds())
		if e.Err != nil {
			o.metrics.SourcesFetched.WithLabelValues("error").Inc()
			o.logger.Warn("source fetch failed, skipping year",
				"year", e.Year, "url", e.URL, "error", e.Err)
			return
		}
		o.metrics.SourcesFetched.WithLabelValues("success").Inc()
		o.logger.Info("source fetched", "year", e.Year, "url", e.URL, "duration", e.Duration)

	case StageExtract:
		o.metrics.CandidatesExtracted.WithLabelValues(e.Profile).Add(float64(e.Count))
		if e.Count == 0 {
			o.logger.Warn("no candidates extracted", "year", e.Year, "profile", e.Profile)
			return
		}
		o.logger.Info("candidates extracted", "year", e.Year, "profile", e.Profile, "count", e.Count)

	case StageNormalize:
		o.metrics.RecordsNormalized.Set(float64(e.Count))
		o.logger.Info("records normalized",
			"total", e.Count, "unique_names", e.Unique, "cities", e.Cities)

	case StageGeocode:
		o.metrics.RecordsGeocoded.Set(float64(e.Count))
		o.metrics.CitiesMissing.Set(float64(len(e.Missing)))
		o.logger.Info("records geocoded", "geocoded", e.Count, "total", e.Total, "cities", e.Cities)
		if len(e.Missing) > 0 {
			o.logger.Warn("cities without coordinates", "cities", e.Missing)
		}

	case StageLoad:
		if e.Err != nil {
			o.logger.Error("load failed", "sink", e.Sink, "error", e.Err)
			return
		}
		o.metrics.RecordsLoaded.WithLabelValues(e.Sink).Add(float64(e.Count))
		o.logger.Info("records loaded", "sink", e.Sink, "count", e.Count)

	case StageRun:
		o.metrics.RunDuration.Observe(e.Duration.Seconds())
		o.metrics.LastRunTimestamp.SetToCurrentTime()
		if e.Err != nil {
			o.metrics.LastRunSuccess.Set(0)
			o.logger.Error("run failed", "error", e.Err, "duration", e.Duration)
			return
		}
		o.metrics.LastRunSuccess.Set(1)
		o.logger.Info("run complete", "records", e.Count, "duration", e.Duration)
	}
}
