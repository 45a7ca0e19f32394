package domain

import (
	"context"
	"log/slog"
)

// GeocodeReport summarizes one geocoding merge for operators.
type GeocodeReport struct {
	// Resolved maps each found city to its coordinates.
	Resolved map[string]GeocodingResult
	// Missing lists cities with no match, in first-seen order.
	Missing []string
	// Lookups is the number of geocoder calls made.
	Lookups int
	// Geocoded counts records that received coordinates.
	Geocoded int
	// Total is the number of records merged.
	Total int
}

// GeocodeRecords attaches coordinates to records by city. Each distinct
// non-empty city is looked up exactly once; the result is applied to every
// record in that city. Lookup errors and misses leave coordinates nil and are
// reported, never returned (graceful degradation). A nil geocoder clears all
// coordinates. Repeating the merge with the same geocoder gives the same records.
func GeocodeRecords(ctx context.Context, records []Record, geocoder Geocoder, logger *slog.Logger) ([]Record, GeocodeReport) {
	report := GeocodeReport{
		Resolved: make(map[string]GeocodingResult),
		Total:    len(records),
	}

	cache := make(map[string]GeocodingResult)
	for _, city := range distinctCities(records) {
		result := lookupCity(ctx, geocoder, city, logger)
		if geocoder != nil {
			report.Lookups++
		}
		cache[city] = result
		if result.Found() {
			report.Resolved[city] = result
		} else {
			report.Missing = append(report.Missing, city)
		}
	}

	out := make([]Record, len(records))
	for i, r := range records {
		r.Latitude, r.Longitude = nil, nil
		if result, ok := cache[r.City]; ok && result.Found() {
			r.Latitude = floatPtr(result.Lat)
			r.Longitude = floatPtr(result.Lon)
			report.Geocoded++
		}
		out[i] = r
	}
	return out, report
}

func lookupCity(ctx context.Context, geocoder Geocoder, city string, logger *slog.Logger) GeocodingResult {
	if geocoder == nil {
		return GeocodingResult{}
	}
	result, err := geocoder.ForwardGeocode(ctx, city, TexasState)
	if err != nil {
		logger.Warn("city geocoding failed", "city", city, "error", err)
		return GeocodingResult{}
	}
	return result
}

// distinctCities returns the non-empty cities of records in first-seen order.
func distinctCities(records []Record) []string {
	seen := make(map[string]struct{})
	var cities []string
	for _, r := range records {
		if r.City == "" {
			continue
		}
		if _, ok := seen[r.City]; ok {
			continue
		}
		seen[r.City] = struct{}{}
		cities = append(cities, r.City)
	}
	return cities
}
