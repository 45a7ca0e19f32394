package domain

import "strings"

// Profile selects the extraction strategy used for one source page.
// Each publication year's markup style maps to one profile.
type Profile int

const (
	// ProfileGeneric handles sparse, list-like markup (older lists).
	ProfileGeneric Profile = iota
	// ProfileStructural handles class-annotated entry containers (recent lists).
	ProfileStructural
)

// String returns the configuration name of the profile.
func (p Profile) String() string {
	switch p {
	case ProfileStructural:
		return "structural"
	default:
		return "generic"
	}
}

// ParseProfile maps a configuration name to a Profile.
func ParseProfile(s string) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "structural":
		return ProfileStructural, true
	case "generic":
		return ProfileGeneric, true
	}
	return ProfileGeneric, false
}

// Source is one ranked-list page to scrape.
type Source struct {
	Year    string
	URL     string
	Profile Profile
}

// RawCandidate is a best-effort restaurant entry recovered from one HTML element.
// Empty strings and a nil Rank mean the field could not be resolved.
type RawCandidate struct {
	Name        string
	RawLocation string
	City        string
	Description string
	Rank        *int

	// Year is assigned by the pipeline after extraction.
	Year string
}

// Record is a normalized restaurant row as persisted in the output table.
type Record struct {
	Name          string   `json:"name"`
	City          string   `json:"city,omitempty"`
	Year          string   `json:"year"`
	Rank          *int     `json:"rank,omitempty"`
	Description   string   `json:"description,omitempty"`
	RawLocation   string   `json:"raw_location,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	RestaurantKey string   `json:"restaurant_key"`
}

// HasCoordinates reports whether the geocoding merge resolved the record's city.
func (r Record) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
