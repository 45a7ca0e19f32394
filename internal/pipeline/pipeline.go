package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
	"github.com/couchcryptid/texas-bbq-etl/internal/observability"
)

// ErrNoData is returned by Run when no source produced any candidate.
var ErrNoData = errors.New("no restaurant data scraped")

// Fetcher downloads and parses one source page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Transformer turns raw candidates into normalized, geocoded records.
type Transformer interface {
	Normalize(candidates []domain.RawCandidate) []domain.Record
	Geocode(ctx context.Context, records []domain.Record) ([]domain.Record, domain.GeocodeReport)
}

// BatchLoader writes the full record table to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []domain.Record) error
}

// Sink is a named BatchLoader. The name labels logs and metrics.
type Sink struct {
	Name   string
	Loader BatchLoader
}

// Observer receives one event per completed stage.
type Observer interface {
	Observe(e observability.Event)
}

// Result is the outcome of one run.
type Result struct {
	Records []domain.Record
	Sources []SourceStatus
	Geocode domain.GeocodeReport
}

// Pipeline orchestrates fetch, extract, normalize, geocode and load for a
// list of sources. Sources are processed one at a time.
type Pipeline struct {
	fetcher     Fetcher
	transformer Transformer
	sinks       []Sink
	logger      *slog.Logger
	metrics     *observability.Metrics
	observer    Observer
	clock       clockwork.Clock
	delay       time.Duration

	ready  atomic.Bool
	mu     sync.Mutex
	status Status
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the real clock used for the polite delay and timings.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithRequestDelay sets the pause before every fetch except the first.
func WithRequestDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.delay = d }
}

// WithObserver replaces the default log-and-metrics observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, t Transformer, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:     f,
		transformer: t,
		sinks:       sinks,
		logger:      logger,
		metrics:     metrics,
		observer:    observability.NewRunObserver(logger, metrics),
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a run has produced a table, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no run has completed successfully yet")
	}
	return nil
}

// Run scrapes every source, then normalizes, geocodes and loads the combined
// table. A source that fails to fetch or yields nothing is skipped. Run
// returns ErrNoData before loading anything when no source yielded a
// candidate, and a wrapped error when the context ends or a sink fails.
func (p *Pipeline) Run(ctx context.Context, sources []domain.Source) (Result, error) {
	start := p.clock.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	p.beginStatus(start, sources)
	p.logger.Info("run started", "sources", len(sources), "request_delay", p.delay)

	res, err := p.run(ctx, sources)

	p.observer.Observe(observability.Event{
		Stage:    observability.StageRun,
		Count:    len(res.Records),
		Duration: p.clock.Since(start),
		Err:      err,
	})
	p.finishStatus(p.clock.Now(), res, err)
	if err == nil {
		p.ready.Store(true)
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, sources []domain.Source) (Result, error) {
	var res Result

	candidates, statuses, err := p.extractAll(ctx, sources)
	res.Sources = statuses
	if err != nil {
		return res, err
	}
	if len(candidates) == 0 {
		return res, ErrNoData
	}

	records := p.transformer.Normalize(candidates)
	p.observer.Observe(observability.Event{
		Stage:  observability.StageNormalize,
		Count:  len(records),
		Unique: domain.UniqueNames(records),
		Cities: len(domain.CityCounts(records)),
	})

	records, report := p.transformer.Geocode(ctx, records)
	res.Records, res.Geocode = records, report
	p.observer.Observe(observability.Event{
		Stage:   observability.StageGeocode,
		Count:   report.Geocoded,
		Total:   report.Total,
		Cities:  len(report.Resolved) + len(report.Missing),
		Missing: report.Missing,
	})

	if err := p.load(ctx, records); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Pipeline) load(ctx context.Context, records []domain.Record) error {
	for _, s := range p.sinks {
		err := s.Loader.LoadBatch(ctx, records)
		p.observer.Observe(observability.Event{
			Stage: observability.StageLoad,
			Sink:  s.Name,
			Count: len(records),
			Err:   err,
		})
		if err != nil {
			return fmt.Errorf("load %s: %w", s.Name, err)
		}
	}
	return nil
}
