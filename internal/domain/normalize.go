package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// unknownCity stands in for a missing city in the restaurant key.
const unknownCity = "unknown"

// Normalize converts raw candidates from all sources into table records:
// it recovers missing cities from location text, cleans names and cities,
// computes restaurant keys, and sorts by year descending then rank ascending.
// Candidates without a name are dropped. The input slice is not modified.
func Normalize(candidates []RawCandidate) []Record {
	records := make([]Record, 0, len(candidates))
	for _, c := range candidates {
		r, ok := normalizeCandidate(c)
		if !ok {
			continue
		}
		records = append(records, r)
	}
	SortRecords(records)
	return records
}

func normalizeCandidate(c RawCandidate) (Record, bool) {
	name := collapseSpace(c.Name)
	if name == "" {
		return Record{}, false
	}

	city := c.City
	if strings.TrimSpace(city) == "" && strings.TrimSpace(c.RawLocation) != "" {
		city = RecoverCity(c.RawLocation)
	}
	city = NormalizeCity(city)

	r := Record{
		Name:        name,
		City:        city,
		Year:        strings.TrimSpace(c.Year),
		Description: c.Description,
		RawLocation: c.RawLocation,
	}
	if c.Rank != nil {
		r.Rank = intPtr(*c.Rank)
	}
	r.RestaurantKey = RestaurantKey(r.Name, r.City)
	return r, true
}

// RecoverCity extracts a town from free location text. It tries the
// "<Town>, Texas|TX" pattern first, then falls back to the first capitalized
// one or two word run. The fallback is approximate: "Owner Aaron Franklin"
// yields "Owner Aaron". It returns "" when neither rule matches.
func RecoverCity(location string) string {
	if city, ok := cityFromLocation(location); ok {
		return city
	}
	if city, ok := cityFromCapitalizedRun(location); ok {
		return city
	}
	return ""
}

// NormalizeCity trims, collapses whitespace and title-cases a town name.
func NormalizeCity(city string) string {
	city = collapseSpace(city)
	if city == "" {
		return ""
	}
	return cases.Title(language.AmericanEnglish).String(city)
}

// RestaurantKey is the canonical identity of a restaurant across editions:
// lower(name) + "_" + lower(city), with "unknown" for a missing city.
func RestaurantKey(name, city string) string {
	if city == "" {
		city = unknownCity
	}
	return strings.ToLower(name) + "_" + strings.ToLower(city)
}

// SortRecords orders records by year descending, then rank ascending.
// Unranked records follow ranked ones of the same year. Ties keep their order.
func SortRecords(records []Record) {
	slices.SortStableFunc(records, compareRecords)
}

func compareRecords(a, b Record) int {
	if c := compareYears(b.Year, a.Year); c != 0 {
		return c
	}
	switch {
	case a.Rank == nil && b.Rank == nil:
		return 0
	case a.Rank == nil:
		return 1
	case b.Rank == nil:
		return -1
	}
	return cmp.Compare(*a.Rank, *b.Rank)
}

// compareYears orders integer years numerically, so "999" sorts before
// "2013", and ranks every integer year above every non-integer one, which
// compare lexically among themselves.
func compareYears(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(ai, bi)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}
