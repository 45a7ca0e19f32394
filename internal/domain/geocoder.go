package domain

import "context"

// TexasState is the state passed to geocoders for every lookup.
const TexasState = "TX"

// GeocodingResult contains location data returned by a geocoding provider.
// A zero Lat/Lon pair means the place was not found.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // provider confidence score, 0 to 1
}

// Found reports whether the result carries coordinates.
func (r GeocodingResult) Found() bool {
	return r.Lat != 0 || r.Lon != 0
}

// Geocoder resolves a town name to coordinates.
type Geocoder interface {
	// ForwardGeocode converts a location name and state to coordinates.
	ForwardGeocode(ctx context.Context, name, state string) (GeocodingResult, error)
}

// FallbackGeocoder asks each geocoder in turn and returns the first result
// with coordinates. Errors from earlier geocoders are skipped when a later one
// succeeds; otherwise the last error is returned.
type FallbackGeocoder []Geocoder

func (f FallbackGeocoder) ForwardGeocode(ctx context.Context, name, state string) (GeocodingResult, error) {
	var lastErr error
	for _, g := range f {
		if g == nil {
			continue
		}
		result, err := g.ForwardGeocode(ctx, name, state)
		if err != nil {
			lastErr = err
			continue
		}
		if result.Found() {
			return result, nil
		}
	}
	return GeocodingResult{}, lastErr
}
