package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlood_SingleLayer(t *testing.T) {
	src := newSource([]string{"year", "fluvial_2020"},
		[]string{"2015", "1.234"},
		[]string{"1985", "0.5"},
		[]string{"2000", "0.756"},
	)

	res, err := Flood(src, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, "fu", table.Name)
	assert.Equal(t, []string{"year", "yearName", "fu"}, table.Header)

	want := [][]string{
		{"2", "1985", "0.5"},
		{"3", "2000", "0.76"},
		{"1", "2015", "1.23"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("fu rows mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, res.Summary, Stat{Label: "Missing flood types", Value: "coastal, pluvial, combined"})
}

func TestFlood_AllLayers(t *testing.T) {
	src := newSource([]string{"year", "comb_2020", "pluvial_2020", "fluvial_2020", "coastal_2020"},
		[]string{"1985", "4", "3", "2", "1"},
		[]string{"2015", "8", "6", "4", "2"},
	)

	res, err := Flood(src, DefaultOptions())
	require.NoError(t, err)

	names := make([]string, len(res.Tables))
	for i, table := range res.Tables {
		names[i] = table.Name
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, table.Name, table.Header[2])
	}
	assert.Equal(t, []string{"cu", "fu", "pu", "comb"}, names)
	assert.Contains(t, res.Summary, Stat{Label: "Dominant risk type (latest year)", Value: "combined (8.00)"})
	assert.Contains(t, res.Summary, Stat{Label: "Coastal flood risk", Value: "average 1.50, range 1.00 - 2.00, trend +1.00 (increase)"})
}

func TestFlood_NoLayers(t *testing.T) {
	src := newSource([]string{"other"}, []string{"1"})

	res, err := Flood(src, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Tables)
	assert.Len(t, res.Warnings, 1)
}

func TestFlood_MissingYear(t *testing.T) {
	src := newSource([]string{"pluvial_2020"}, []string{"1"})

	_, err := Flood(src, DefaultOptions())
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"year"`)
}

func TestEarthquake(t *testing.T) {
	header := []string{"BEGAN", "distance", "eqMagnitude", "text", "line1", "line2", "line3", "extra"}
	src := newSource(header,
		[]string{"2010-05-03", "12.6", "5.5", "M 5.5 - north", "a", "b", "c", "x"},
		[]string{"bad-date", "1", "4", "lost", "", "", "", "x"},
		[]string{"1999-12-31 10:00:00", "5", "6", "M 6.0", "d", "NA", "f", "x"},
		[]string{"2005/06/07", "", "4.21", "M 4.2", "g", "h", "i", "x"},
		[]string{"", "100.5", "7.04", "no date", "", "", "", "x"},
		[]string{"2001-02-03T04:05:06Z", "100.5", "7.04", "M 7.0", "j", "k", "l", "x"},
	)

	res, err := Earthquake(src, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, "ee", table.Name)
	assert.Equal(t, EarthquakeHeader, table.Header)

	want := [][]string{
		{"1999", "5", "6.0", "M 6.0", "d", "", "f"},
		{"2001", "100", "7.0", "M 7.0", "j", "k", "l"},
		{"2005", "", "4.2", "M 4.2", "g", "h", "i"},
		{"2010", "13", "5.5", "M 5.5 - north", "a", "b", "c"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("ee rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, res.RowsDropped)
	assert.Len(t, res.Warnings, 1)
}

func TestParseBegan(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2010-05-03", 2010, true},
		{"1999-12-31 10:00:00", 1999, true},
		{"2020-01-05 00:00:00+00:00", 2020, true},
		{"2019-12-31 23:30:00-05:00", 2019, true},
		{"2004-07-15T10:00:00Z", 2004, true},
		{"1975/01/20", 1975, true},
		{"03/04/1988", 1988, true},
		{"unknown", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseBegan(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEarthquake_MissingColumn(t *testing.T) {
	src := newSource([]string{"BEGAN", "distance"}, []string{"2010-01-01", "1"})
	_, err := Earthquake(src, DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestDangerClass(t *testing.T) {
	tests := []struct {
		fwi  float64
		want string
	}{
		{-1, "Very low"},
		{0, "Very low"},
		{5.19, "Very low"},
		{5.2, "Low"},
		{11.19, "Low"},
		{11.2, "Moderate"},
		{21.3, "High"},
		{37.99, "High"},
		{38.0, "Very high"},
		{49.99, "Very high"},
		{50.0, "Extreme"},
		{120, "Extreme"},
		{math.NaN(), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DangerClass(tt.fwi), "fwi=%v", tt.fwi)
	}
}

func TestWeekMonth(t *testing.T) {
	want := map[int]string{
		1: "Jan", 4: "Jan", 5: "Feb", 9: "Feb", 10: "Mar", 13: "Mar",
		14: "Apr", 17: "Apr", 18: "May", 22: "May", 23: "Jun", 26: "Jun",
		27: "Jul", 30: "Jul", 31: "Aug", 35: "Aug", 36: "Sep", 39: "Sep",
		40: "Oct", 43: "Oct", 44: "Nov", 47: "Nov", 48: "Dec", 53: "Dec",
	}
	for week, month := range want {
		assert.Equal(t, month, weekMonth(week), "week %d", week)
	}
}

func TestFireWeather(t *testing.T) {
	src := newSource([]string{"week", "pctile_95"},
		[]string{"10", "12.3456"},
		[]string{"1", "5.2"},
		[]string{"48", ""},
		[]string{"", "3"},
	)

	res, err := FireWeather(src, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)

	table := res.Tables[0]
	assert.Equal(t, "fwi", table.Name)
	assert.Equal(t, FireWeatherHeader, table.Header)

	want := [][]string{
		{"1", "Jan", "5.2", "Low"},
		{"10", "Mar", "12.35", "Moderate"},
		{"48", "Dec", "", "Unknown"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("fwi rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.RowsDropped)
	assert.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Summary, Stat{Label: "Peak fire weather month", Value: "Mar (max FWI: 12.35)"})
	assert.Contains(t, res.Summary, Stat{Label: "  Moderate", Value: "1 weeks (33.3%)"})
}

func TestFireWeather_DangerUsesUnroundedValue(t *testing.T) {
	src := newSource([]string{"week", "pctile_95"}, []string{"1", "5.199"})
	res, err := FireWeather(src, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Jan", "5.2", "Very low"}, res.Tables[0].Rows[0])
}
