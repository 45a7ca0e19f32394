package domain

import (
	"cmp"
	"slices"
)

// Columns is the output table header, in order.
var Columns = []string{
	"name", "city", "year", "rank", "description",
	"raw_location", "latitude", "longitude", "restaurant_key",
}

// CityCount is the number of distinct restaurant names ranked in a city.
type CityCount struct {
	City  string
	Count int
}

// CityCounts counts unique restaurant names per city, skipping records
// without a city. Results are ordered by count descending, then city.
func CityCounts(records []Record) []CityCount {
	names := make(map[string]map[string]struct{})
	for _, r := range records {
		if r.City == "" {
			continue
		}
		set, ok := names[r.City]
		if !ok {
			set = make(map[string]struct{})
			names[r.City] = set
		}
		set[r.Name] = struct{}{}
	}

	counts := make([]CityCount, 0, len(names))
	for city, set := range names {
		counts = append(counts, CityCount{City: city, Count: len(set)})
	}
	slices.SortFunc(counts, func(a, b CityCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.City, b.City)
	})
	return counts
}

// UniqueNames counts distinct restaurant names.
func UniqueNames(records []Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Name] = struct{}{}
	}
	return len(seen)
}

// FieldCount is the number of records with a value in one column.
type FieldCount struct {
	Column  string
	Present int
}

// Completeness reports, per output column, how many records carry a value.
func Completeness(records []Record) []FieldCount {
	present := make(map[string]int, len(Columns))
	for _, r := range records {
		for col, ok := range map[string]bool{
			"name":           r.Name != "",
			"city":           r.City != "",
			"year":           r.Year != "",
			"rank":           r.Rank != nil,
			"description":    r.Description != "",
			"raw_location":   r.RawLocation != "",
			"latitude":       r.Latitude != nil,
			"longitude":      r.Longitude != nil,
			"restaurant_key": r.RestaurantKey != "",
		} {
			if ok {
				present[col]++
			}
		}
	}

	out := make([]FieldCount, len(Columns))
	for i, col := range Columns {
		out[i] = FieldCount{Column: col, Present: present[col]}
	}
	return out
}
