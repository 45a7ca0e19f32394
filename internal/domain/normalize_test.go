package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(name, city, year string, rank *int) RawCandidate {
	return RawCandidate{Name: name, City: city, Year: year, Rank: rank}
}

func namesOf(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name + "/" + r.Year
	}
	return out
}

func TestNormalize_SortsByYearThenRank(t *testing.T) {
	in := []RawCandidate{
		candidate("A", "Austin", "2021", intPtr(5)),
		candidate("B", "Austin", "2025", intPtr(10)),
		candidate("C", "Austin", "2025", intPtr(2)),
	}

	got := Normalize(in)

	assert.Equal(t, []string{"C/2025", "B/2025", "A/2021"}, namesOf(got))
}

func TestNormalize_UnrankedLastWithinYear(t *testing.T) {
	in := []RawCandidate{
		candidate("Unranked", "Austin", "2025", nil),
		candidate("Ten", "Austin", "2025", intPtr(10)),
		candidate("Old", "Austin", "2017", intPtr(1)),
		candidate("One", "Austin", "2025", intPtr(1)),
	}

	got := Normalize(in)

	assert.Equal(t, []string{"One/2025", "Ten/2025", "Unranked/2025", "Old/2017"}, namesOf(got))
}

func TestNormalize_CleansNameAndCity(t *testing.T) {
	got := Normalize([]RawCandidate{
		candidate("  Snow's \n  BBQ ", "  fort   WORTH ", "2025", nil),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Snow's BBQ", got[0].Name)
	assert.Equal(t, "Fort Worth", got[0].City)
	assert.Equal(t, "snow's bbq_fort worth", got[0].RestaurantKey)
}

func TestNormalize_DropsEmptyNames(t *testing.T) {
	got := Normalize([]RawCandidate{
		candidate("   ", "Austin", "2025", nil),
		candidate("Franklin Barbecue", "Austin", "2025", nil),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Franklin Barbecue", got[0].Name)
}

func TestNormalize_RecoversCityFromRawLocation(t *testing.T) {
	tests := []struct {
		name        string
		rawLocation string
		want        string
	}{
		{"state pattern", "1101 S Main, Lockhart, Texas", "Lockhart"},
		{"abbreviation", "Lexington TX", "Lexington"},
		{"capitalized run fallback", "downtown San Marcos near the square", "San Marcos"},
		{"nothing recognizable", "123 main st", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]RawCandidate{{Name: "Joint", RawLocation: tt.rawLocation, Year: "2025"}})

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].City)
			assert.Equal(t, tt.rawLocation, got[0].RawLocation)
		})
	}
}

func TestNormalize_KeepsExtractedCity(t *testing.T) {
	got := Normalize([]RawCandidate{
		{Name: "Joint", City: "Taylor", RawLocation: "Elgin, TX", Year: "2025"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Taylor", got[0].City)
}

func TestNormalize_Idempotent(t *testing.T) {
	in := []RawCandidate{
		candidate("Franklin Barbecue", "austin", "2021", intPtr(1)),
		{Name: "Snow's BBQ", RawLocation: "Lexington, Texas", Year: "2025", Rank: intPtr(3)},
		candidate("Pecan Lodge", "", "2025", nil),
	}

	once := Normalize(in)
	again := make([]RawCandidate, len(once))
	for i, r := range once {
		again[i] = RawCandidate{
			Name: r.Name, City: r.City, Year: r.Year, Rank: r.Rank,
			Description: r.Description, RawLocation: r.RawLocation,
		}
	}
	twice := Normalize(again)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("normalize is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalize_DoesNotAliasInputRank(t *testing.T) {
	rank := 4
	in := []RawCandidate{candidate("Cattleack", "Dallas", "2025", &rank)}

	got := Normalize(in)
	rank = 99

	require.NotNil(t, got[0].Rank)
	assert.Equal(t, 4, *got[0].Rank)
}

func TestRestaurantKey(t *testing.T) {
	assert.Equal(t, "joe's_austin", RestaurantKey("Joe's", "Austin"))
	assert.Equal(t, RestaurantKey("Joe's", "Austin"), RestaurantKey("JOE'S", "austin"))
	assert.Equal(t, "joe's_unknown", RestaurantKey("Joe's", ""))
	assert.NotEqual(t, RestaurantKey("Joe's", "Austin"), RestaurantKey("Joe's", "Dallas"))
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "San Antonio", NormalizeCity("SAN ANTONIO"))
	assert.Equal(t, "New Braunfels", NormalizeCity(" new\tbraunfels "))
	assert.Empty(t, NormalizeCity("   "))
}

func TestSortRecords_NumericYears(t *testing.T) {
	records := []Record{
		{Name: "old", Year: "999"},
		{Name: "new", Year: "2013"},
	}

	SortRecords(records)

	assert.Equal(t, "new", records[0].Name)
}

func TestSortRecords_MixedYears(t *testing.T) {
	records := []Record{
		{Name: "a", Year: "1a"},
		{Name: "b", Year: "9"},
		{Name: "c", Year: "10"},
		{Name: "d", Year: "draft"},
		{Name: "e", Year: "2021"},
	}

	SortRecords(records)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.Year
	}
	assert.Equal(t, []string{"2021", "10", "9", "draft", "1a"}, got,
		"integer years first, newest first, then the rest in reverse lexical order")
}

func TestCompareYears_Transitive(t *testing.T) {
	years := []string{"10", "9", "1a", "2013", "", "x"}
	for _, a := range years {
		for _, b := range years {
			for _, c := range years {
				if compareYears(a, b) > 0 && compareYears(b, c) > 0 {
					assert.Positive(t, compareYears(a, c), "%q > %q > %q", a, b, c)
				}
			}
		}
	}
}
