package pipeline

import (
	"slices"
	"time"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

// SourceStatus is the outcome of one source in a run.
type SourceStatus struct {
	Year       string `json:"year"`
	URL        string `json:"url"`
	Profile    string `json:"profile"`
	Candidates int    `json:"candidates"`
	Error      string `json:"error,omitempty"`
}

// Status is a snapshot of the current or last run.
type Status struct {
	Running       bool           `json:"running"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	FinishedAt    *time.Time     `json:"finished_at,omitempty"`
	Sources       []SourceStatus `json:"sources"`
	Records       int            `json:"records"`
	Geocoded      int            `json:"geocoded"`
	MissingCities []string       `json:"missing_cities,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Status returns a copy of the current run status. It is safe to call while
// a run is in progress.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.status
	s.Sources = slices.Clone(s.Sources)
	s.MissingCities = slices.Clone(s.MissingCities)
	return s
}

func (p *Pipeline) beginStatus(start time.Time, sources []domain.Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = Status{
		Running:   true,
		StartedAt: &start,
		Sources:   make([]SourceStatus, 0, len(sources)),
	}
}

func (p *Pipeline) updateSources(sources []SourceStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.Sources = slices.Clone(sources)
}

func (p *Pipeline) finishStatus(end time.Time, res Result, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.Running = false
	p.status.FinishedAt = &end
	p.status.Records = len(res.Records)
	p.status.Geocoded = res.Geocode.Geocoded
	p.status.MissingCities = slices.Clone(res.Geocode.Missing)
	if err != nil {
		p.status.Error = err.Error()
	}
}
