package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
	"github.com/couchcryptid/texas-bbq-etl/internal/observability"
)

// extractAll fetches and extracts every source in order, waiting the polite
// delay before each fetch except the first. Failed fetches are observed and
// skipped. Only context cancellation stops the loop early.
func (p *Pipeline) extractAll(ctx context.Context, sources []domain.Source) ([]domain.RawCandidate, []SourceStatus, error) {
	var all []domain.RawCandidate
	statuses := make([]SourceStatus, 0, len(sources))

	for i, src := range sources {
		if i > 0 && !sleepWithContext(ctx, p.clock, p.delay) {
			return all, statuses, fmt.Errorf("run interrupted before %s: %w", src.Year, ctx.Err())
		}

		candidates, err := p.extractSource(ctx, src)
		status := SourceStatus{Year: src.Year, URL: src.URL, Profile: src.Profile.String(), Candidates: len(candidates)}
		if err != nil {
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
		p.updateSources(statuses)

		if err != nil && ctx.Err() != nil {
			return all, statuses, fmt.Errorf("run interrupted during %s: %w", src.Year, ctx.Err())
		}
		all = append(all, candidates...)
	}
	return all, statuses, nil
}

// extractSource fetches one page and extracts its candidates, stamping each
// with the source year.
func (p *Pipeline) extractSource(ctx context.Context, src domain.Source) ([]domain.RawCandidate, error) {
	start := p.clock.Now()
	doc, err := p.fetcher.Fetch(ctx, src.URL)
	p.observer.Observe(observability.Event{
		Stage:    observability.StageFetch,
		Year:     src.Year,
		URL:      src.URL,
		Duration: p.clock.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}

	candidates := domain.Extract(doc, src.Profile)
	for i := range candidates {
		candidates[i].Year = src.Year
	}
	p.observer.Observe(observability.Event{
		Stage:   observability.StageExtract,
		Year:    src.Year,
		Profile: src.Profile.String(),
		Count:   len(candidates),
	})
	return candidates, nil
}

// sleepWithContext waits d on clock. It returns false if ctx ends first.
func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
