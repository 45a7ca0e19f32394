package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

// RecordTransformer implements Transformer using the domain normalization
// and geocoding merge.
type RecordTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a RecordTransformer. Pass a nil geocoder to leave
// every record without coordinates.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *RecordTransformer {
	return &RecordTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *RecordTransformer) Normalize(candidates []domain.RawCandidate) []domain.Record {
	return domain.Normalize(candidates)
}

func (t *RecordTransformer) Geocode(ctx context.Context, records []domain.Record) ([]domain.Record, domain.GeocodeReport) {
	return domain.GeocodeRecords(ctx, records, t.geocoder, t.logger)
}
