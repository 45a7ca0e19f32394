package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

func rank(n int) *int { return &n }

func writeTable(t *testing.T) string {
	t.Helper()
	records := []domain.Record{
		{Name: "Goldee's Barbecue", City: "Fort Worth", Year: "2021", Rank: rank(1), RestaurantKey: "goldee's barbecue_fort worth"},
		{Name: "Franklin Barbecue", City: "Austin", Year: "2021", Rank: rank(2), RestaurantKey: "franklin barbecue_austin"},
		{Name: "Franklin Barbecue", City: "Austin", Year: "2021", Rank: rank(2), RestaurantKey: "franklin barbecue_austin"},
		{Name: "InterStellar BBQ", City: "Austin", Year: "2021", Rank: rank(3), RestaurantKey: "interstellar bbq_austin"},
		{Name: "Franklin Barbecue", City: "Austin", Year: "2017", Rank: rank(1), RestaurantKey: "franklin barbecue_austin"},
		{Name: "Mystery Smokehouse", Year: "2017", RestaurantKey: "mystery smokehouse_unknown"},
	}
	path := filepath.Join(t.TempDir(), "restaurants.csv")
	require.NoError(t, csvfile.WriteFile(path, records))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClean_RemovesExactDuplicates(t *testing.T) {
	in := writeTable(t)
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	stdout, err := execute(t, "clean", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed 1 duplicate rows; 5 rows written")

	cleaned, err := csvfile.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, cleaned, 5)
	assert.Equal(t, "InterStellar BBQ", cleaned[2].Name, "original order kept")
	assert.Equal(t, "2017", cleaned[3].Year, "same restaurant in another year kept")
}

func TestClean_MissingInput(t *testing.T) {
	_, err := execute(t, "clean", "--in", filepath.Join(t.TempDir(), "absent.csv"), "--out", filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
}

func TestAnalyze_Report(t *testing.T) {
	in := writeTable(t)

	stdout, err := execute(t, "analyze", "--in", in, "--top", "1")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Summary")
	assert.Contains(t, stdout, "Unique restaurants")
	assert.Contains(t, stdout, "[2021 2017]")
	assert.Contains(t, stdout, "Completeness")
	assert.Contains(t, stdout, "raw_location")
	assert.Contains(t, stdout, "Top 1 cities by unique restaurants")
	assert.Contains(t, stdout, "Austin")
	assert.Contains(t, stdout, "Sample rows")
	assert.Contains(t, stdout, "Goldee's Barbecue")
}

func TestAnalyze_TitlesWiderThanTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "narrow.csv")
	require.NoError(t, csvfile.WriteFile(path, []domain.Record{
		{Name: "Louie Mueller Barbecue", City: "Taylor", Year: "2021", RestaurantKey: "louie mueller barbecue_taylor"},
	}))

	tests := []struct {
		top   string
		title string
	}{
		{"1", "Top 1 cities by unique restaurants"},
		{"25", "Top 25 cities by unique restaurants"},
	}
	for _, tt := range tests {
		t.Run(tt.top, func(t *testing.T) {
			stdout, err := execute(t, "analyze", "--in", path, "--top", tt.top)
			require.NoError(t, err)

			assert.Contains(t, stdout, tt.title+"\n", "title is printed on one line")
			assert.Contains(t, stdout, "Taylor")
		})
	}
}

func TestAnalyze_RejectsBadTop(t *testing.T) {
	_, err := execute(t, "analyze", "--in", writeTable(t), "--top", "0")
	require.ErrorContains(t, err, "--top")
}

func TestAnalyze_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, csvfile.WriteFile(path, nil))

	_, err := execute(t, "analyze", "--in", path)
	require.ErrorContains(t, err, "no rows")
}

func TestYears_NewestFirst(t *testing.T) {
	records := []domain.Record{{Year: "2013"}, {Year: "2021"}, {Year: "2013"}, {Year: "999"}, {Year: "2017"}}

	assert.Equal(t, []string{"2021", "2017", "2013", "999"}, years(records))
}

func TestChart_WritesPNG(t *testing.T) {
	in := writeTable(t)
	out := filepath.Join(t.TempDir(), "charts", "by_city.png")

	stdout, err := execute(t, "chart", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "chart written")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "expected PNG signature")
}

func TestChart_NoCities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nocity.csv")
	require.NoError(t, csvfile.WriteFile(path, []domain.Record{{Name: "Joint", Year: "2021", RestaurantKey: "joint_unknown"}}))

	_, err := execute(t, "chart", "--in", path, "--out", filepath.Join(t.TempDir(), "c.png"))
	require.Error(t, err)
}
